package domain

import "time"

// Profile field keys as they appear in a document field set.
const (
	FieldBizName = "bizName"
	FieldBizNo   = "bizNo"
	FieldRepName = "repName"
	FieldAddress = "address"
	FieldTel     = "tel"
	FieldPhone   = "phone"
	FieldEmail   = "email"
)

// ProfileFieldKeys lists the field keys backed by the global profile.
var ProfileFieldKeys = []string{FieldBizName, FieldBizNo, FieldRepName, FieldAddress, FieldTel, FieldPhone, FieldEmail}

// Profile is the global business identity record. There is exactly one.
type Profile struct {
	BizName   string    `json:"bizName" validate:"required"`
	BizNo     string    `json:"bizNo" validate:"required"`
	RepName   string    `json:"repName"`
	Address   string    `json:"address"`
	Tel       string    `json:"tel"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email" validate:"omitempty,email"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Fields returns the profile as document fields.
func (p Profile) Fields() FieldSet {
	return FieldSet{
		FieldBizName: Text(p.BizName),
		FieldBizNo:   Text(p.BizNo),
		FieldRepName: Text(p.RepName),
		FieldAddress: Text(p.Address),
		FieldTel:     Text(p.Tel),
		FieldPhone:   Text(p.Phone),
		FieldEmail:   Text(p.Email),
	}
}

// ProfileFromFields extracts the profile-shaped record from a field set.
func ProfileFromFields(fs FieldSet) Profile {
	return Profile{
		BizName: fs.Text(FieldBizName),
		BizNo:   fs.Text(FieldBizNo),
		RepName: fs.Text(FieldRepName),
		Address: fs.Text(FieldAddress),
		Tel:     fs.Text(FieldTel),
		Phone:   fs.Text(FieldPhone),
		Email:   fs.Text(FieldEmail),
	}
}
