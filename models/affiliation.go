package models

// Affiliation represents a research structure (laboratory, company,
// university department).
type Affiliation struct {
	AffiliationID int    `gorm:"primaryKey;column:affiliation_id" json:"affiliation_id"`
	Sigle         string `gorm:"column:sigle" json:"sigle"`
	Name          string `gorm:"column:name" json:"name"`
	City          string `gorm:"column:city" json:"city"`
}

// TableName specifies the table name for Affiliation.
func (Affiliation) TableName() string {
	return "affiliations"
}

// UserAffiliation links a user to one of their affiliations. The affiliation
// sets of authors and reviewers drive conflict-of-interest detection.
type UserAffiliation struct {
	UserID        int `gorm:"primaryKey;column:user_id" json:"user_id"`
	AffiliationID int `gorm:"primaryKey;column:affiliation_id" json:"affiliation_id"`
}

// TableName specifies the table for UserAffiliation.
func (UserAffiliation) TableName() string {
	return "user_affiliations"
}
