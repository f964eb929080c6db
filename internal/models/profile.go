package models

import "time"

// ProfileRow is the single row of the profile table (id is always 1).
type ProfileRow struct {
	ID        int       `json:"id"`
	BizName   string    `json:"biz_name"`
	BizNo     string    `json:"biz_no"`
	RepName   string    `json:"rep_name"`
	Address   string    `json:"address"`
	Tel       string    `json:"tel"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileRowID is the primary key of the singleton profile row.
const ProfileRowID = 1
