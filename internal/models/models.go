package models

import "time"

type AgeGroup string

const (
	AgeChildren   AgeGroup = "children"
	AgeYouth      AgeGroup = "youth"
	AgeYoungAdult AgeGroup = "young_adult"
	AgeAdult      AgeGroup = "adult"
	AgeSenior     AgeGroup = "senior"
)

// AgeGroups lists every ministry age group in display order.
var AgeGroups = []AgeGroup{AgeChildren, AgeYouth, AgeYoungAdult, AgeAdult, AgeSenior}

const (
	LangEnglish = "en"
	LangSpanish = "es"
)

// Visitor is one welcome-desk intake record. Rows are insert-only.
type Visitor struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	FullName       string    `gorm:"not null" json:"fullName" validate:"required,notblank"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email" validate:"omitempty,email"`
	AgeGroup       AgeGroup  `gorm:"not null;index" json:"ageGroup" validate:"required,oneof=children youth young_adult adult senior"`
	City           string    `json:"city"`
	HearAbout      string    `json:"hearAbout"`
	IsFirstTime    bool      `gorm:"not null" json:"isFirstTime"`
	Notes          string    `json:"notes"`
	Language       string    `gorm:"not null;size:2" json:"language" validate:"required,oneof=en es"`
	SubmissionDate time.Time `gorm:"not null;index;autoCreateTime:false" json:"submissionDate"`
}

func (Visitor) TableName() string { return "visitors" }

// VisitorInput is the raw form payload: a Visitor minus server-assigned fields.
type VisitorInput struct {
	FullName    string   `json:"fullName"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	AgeGroup    AgeGroup `json:"ageGroup"`
	City        string   `json:"city"`
	HearAbout   string   `json:"hearAbout"`
	IsFirstTime *bool    `json:"isFirstTime"`
	Notes       string   `json:"notes"`
	Language    string   `json:"language"`
}

// LanguageName is the human label used in notifications and exports.
func (v Visitor) LanguageName() string {
	if v.Language == LangSpanish {
		return "Spanish"
	}
	return "English"
}
