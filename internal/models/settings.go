package models

import "time"

// SettingsID is the primary key of the one church settings row.
const SettingsID = "church"

const (
	DefaultChurchName   = "Grace Community Church"
	DefaultSubtitle     = "Welcome Center"
	DefaultPrimaryColor = "#1976D2"
)

// NotificationEmails routes new-visitor notices to ministry leaders.
// Empty string means "not configured".
type NotificationEmails struct {
	Children   string `json:"children" validate:"omitempty,email"`
	Youth      string `json:"youth" validate:"omitempty,email"`
	YoungAdult string `json:"youngAdult" validate:"omitempty,email"`
	Adult      string `json:"adult" validate:"omitempty,email"`
	Senior     string `json:"senior" validate:"omitempty,email"`
}

type ChurchSettings struct {
	ID                 string             `gorm:"primaryKey;size:36" json:"id,omitempty"`
	Name               string             `gorm:"not null" json:"name" validate:"required,notblank"`
	Subtitle           string             `gorm:"not null" json:"subtitle" validate:"required,notblank"`
	LogoURL            string             `json:"logoUrl"`
	PrimaryColor       string             `gorm:"not null;size:7" json:"primaryColor" validate:"required,hexcolor6"`
	NotificationEmails NotificationEmails `gorm:"serializer:json;type:text" json:"notificationEmails"`
	UpdatedAt          time.Time          `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

func (ChurchSettings) TableName() string { return "church_settings" }

// DefaultChurchSettings is what the UI renders before anything is saved.
func DefaultChurchSettings() ChurchSettings {
	return ChurchSettings{
		Name:         DefaultChurchName,
		Subtitle:     DefaultSubtitle,
		PrimaryColor: DefaultPrimaryColor,
	}
}

// Settings keys use camelCase while the age group enum uses snake_case
// (young_adult vs youngAdult). A new AgeGroup needs a row here and a field
// on NotificationEmails.
var settingsKeyByAgeGroup = map[AgeGroup]string{
	AgeChildren:   "children",
	AgeYouth:      "youth",
	AgeYoungAdult: "youngAdult",
	AgeAdult:      "adult",
	AgeSenior:     "senior",
}

// SettingsKey returns the notificationEmails key for g.
func SettingsKey(g AgeGroup) (string, bool) {
	k, ok := settingsKeyByAgeGroup[g]
	return k, ok
}

// Lookup returns the configured address for a settings key.
func (n NotificationEmails) Lookup(key string) string {
	switch key {
	case "children":
		return n.Children
	case "youth":
		return n.Youth
	case "youngAdult":
		return n.YoungAdult
	case "adult":
		return n.Adult
	case "senior":
		return n.Senior
	}
	return ""
}

// For resolves the leader address for a visitor's age group.
func (n NotificationEmails) For(g AgeGroup) string {
	key, ok := SettingsKey(g)
	if !ok {
		return ""
	}
	return n.Lookup(key)
}

// NotificationEmailsPatch carries only the keys a caller sent.
type NotificationEmailsPatch struct {
	Children   *string `json:"children"`
	Youth      *string `json:"youth"`
	YoungAdult *string `json:"youngAdult"`
	Adult      *string `json:"adult"`
	Senior     *string `json:"senior"`
}

// SettingsPatch is a partial or full settings update.
type SettingsPatch struct {
	Name               *string                  `json:"name"`
	Subtitle           *string                  `json:"subtitle"`
	LogoURL            *string                  `json:"logoUrl"`
	PrimaryColor       *string                  `json:"primaryColor"`
	NotificationEmails *NotificationEmailsPatch `json:"notificationEmails"`
}

// ApplyTo merges the patch over s. Top-level fields are replaced when present;
// notification emails merge key by key so one ministry's address never
// clears another's.
func (p SettingsPatch) ApplyTo(s ChurchSettings) ChurchSettings {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Subtitle != nil {
		s.Subtitle = *p.Subtitle
	}
	if p.LogoURL != nil {
		s.LogoURL = *p.LogoURL
	}
	if p.PrimaryColor != nil {
		s.PrimaryColor = *p.PrimaryColor
	}
	if ne := p.NotificationEmails; ne != nil {
		setIf(&s.NotificationEmails.Children, ne.Children)
		setIf(&s.NotificationEmails.Youth, ne.Youth)
		setIf(&s.NotificationEmails.YoungAdult, ne.YoungAdult)
		setIf(&s.NotificationEmails.Adult, ne.Adult)
		setIf(&s.NotificationEmails.Senior, ne.Senior)
	}
	return s
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
