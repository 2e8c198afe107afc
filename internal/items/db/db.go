package db

import (
	"context"

	"github.com/uptrace/bun"

	"fullstack-starter/internal/schema"
)

type DB struct {
	Bun *bun.DB
}

func (d *DB) CreateItem(item schema.Item) error {
	_, err := d.Bun.NewInsert().Model(&item).Exec(context.Background())
	return err
}

func (d *DB) GetItem(name string) (*schema.Item, error) {
	var item schema.Item
	err := d.Bun.NewSelect().
		Model(&item).
		Where("name = ?", name).
		Limit(1).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (d *DB) ListItems() ([]schema.Item, error) {
	var items []schema.Item
	err := d.Bun.NewSelect().
		Model(&items).
		Order("name ASC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (d *DB) DeleteItem(name string) error {
	_, err := d.Bun.NewDelete().
		Model((*schema.Item)(nil)).
		Where("name = ?", name).
		Exec(context.Background())
	return err
}
