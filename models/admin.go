package models

import "gorm.io/gorm"

type Admin struct {
	gorm.Model

	FullName string `json:"full_name" gorm:"type:varchar(200)"`
	Username string `json:"username" gorm:"uniqueIndex;type:varchar(191)"`
	Password string `json:"-" gorm:"type:varchar(255)"`
}
