package db

import (
	"context"

	"github.com/uptrace/bun"

	"fullstack-starter/internal/schema"
)

type DB struct {
	Bun *bun.DB
}

func (d *DB) CreateUser(user schema.User) (*schema.User, error) {
	_, err := d.Bun.NewInsert().Model(&user).Exec(context.Background())
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *DB) GetUserByID(id int64) (*schema.User, error) {
	var user schema.User
	err := d.Bun.NewSelect().
		Model(&user).
		Where("id = ?", id).
		Limit(1).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *DB) GetUserByEmail(email string) (*schema.User, error) {
	var user schema.User
	err := d.Bun.NewSelect().
		Model(&user).
		Where("email = ?", email).
		Limit(1).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *DB) ListUsers() ([]schema.User, error) {
	var users []schema.User
	err := d.Bun.NewSelect().
		Model(&users).
		Order("id ASC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (d *DB) UpdateUser(user schema.User) error {
	_, err := d.Bun.NewUpdate().
		Model(&user).
		Column("email", "name").
		Where("id = ?", user.ID).
		Exec(context.Background())
	return err
}

func (d *DB) DeleteUser(id int64) error {
	_, err := d.Bun.NewDelete().
		Model((*schema.User)(nil)).
		Where("id = ?", id).
		Exec(context.Background())
	return err
}
