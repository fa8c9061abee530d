package models

import "time"

// SignatureRole matches the signature_role ENUM in the database.
type SignatureRole string

const (
	SignatureReferee      SignatureRole = "referee"
	SignatureLocalCaptain SignatureRole = "local_captain"
	SignatureVisitCaptain SignatureRole = "visit_captain"
)

func (r SignatureRole) IsValid() bool {
	switch r {
	case SignatureReferee, SignatureLocalCaptain, SignatureVisitCaptain:
		return true
	}
	return false
}

// Signature is the sign-off of a closed match sheet. The image itself lives
// in object storage; only the key is persisted.
type Signature struct {
	ID       int           `json:"id" db:"id"`
	MatchID  int           `json:"match_id" db:"match_id"`
	Role     SignatureRole `json:"role" db:"role"`
	SignerName string      `json:"signer_name" db:"signer_name"`
	ImageKey *string       `json:"-" db:"image_key"`
	ImageURL *string       `json:"image_url,omitempty" db:"-"`
	SignedAt time.Time     `json:"signed_at" db:"signed_at"`
}
