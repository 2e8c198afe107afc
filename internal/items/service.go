package items

import (
	"errors"
	"strings"

	"fullstack-starter/internal/schema"
)

var ErrEmptyName = errors.New("item name must not be empty")

type ItemDBLayer interface {
	CreateItem(item schema.Item) error
	GetItem(name string) (*schema.Item, error)
	ListItems() ([]schema.Item, error)
	DeleteItem(name string) error
}

type ItemService struct {
	DB ItemDBLayer
}

func NewItemService(db ItemDBLayer) *ItemService {
	return &ItemService{DB: db}
}

func (s *ItemService) AddItem(name string) (*schema.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	item := schema.Item{Name: name}
	if err := s.DB.CreateItem(item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *ItemService) ListItems() ([]schema.Item, error) {
	return s.DB.ListItems()
}

func (s *ItemService) RemoveItem(name string) error {
	if _, err := s.DB.GetItem(name); err != nil {
		return err
	}
	return s.DB.DeleteItem(name)
}
