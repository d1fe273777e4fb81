package model

import (
	"gorm.io/gorm"
)

// AutoMigrate 按模型名称执行自动迁移，key 为空时迁移全部模型
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {
	case "Note", "":
		return db.AutoMigrate(&Note{})
	}
	return nil
}
