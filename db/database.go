package db

import (
	"context"

	"gorm.io/gorm"
)

type Database interface {
	WithContext(ctx context.Context) *gorm.DB
}

type GormDatabase struct {
	DB *gorm.DB
}

func (g *GormDatabase) WithContext(ctx context.Context) *gorm.DB { return g.DB.WithContext(ctx) }
