package models

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// ContactStatus is the state of a generic finder/owner contact request.
type ContactStatus string

const (
	ContactStatusPending  ContactStatus = "pending"
	ContactStatusAccepted ContactStatus = "accepted"
	ContactStatusRejected ContactStatus = "rejected"
)

// ParseContactStatus returns the ContactStatus for s or an error if s is not one of the known values.
func ParseContactStatus(s string) (ContactStatus, error) {
	switch ContactStatus(s) {
	case ContactStatusPending, ContactStatusAccepted, ContactStatusRejected:
		return ContactStatus(s), nil
	}
	return "", fmt.Errorf("invalid contact status %q", s)
}

// UnmarshalJSON rejects unknown statuses.
func (s *ContactStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("contact status must be a string: %w", err)
	}
	parsed, err := ParseContactStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// UnmarshalBSONValue rejects unknown statuses.
func (s *ContactStatus) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw, ok := bson.RawValue{Type: t, Value: data}.StringValueOK()
	if !ok {
		return fmt.Errorf("contact status must be a BSON string, got %s", t)
	}
	parsed, err := ParseContactStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// AcceptType is the finder's response to a landlord proposal.
// It only ever moves from PENDING to Y or N.
type AcceptType string

const (
	AcceptTypeAccepted AcceptType = "Y"
	AcceptTypeRejected AcceptType = "N"
	AcceptTypePending  AcceptType = "PENDING"
)

// ParseAcceptType returns the AcceptType for s or an error if s is not one of the known values.
func ParseAcceptType(s string) (AcceptType, error) {
	switch AcceptType(s) {
	case AcceptTypeAccepted, AcceptTypeRejected, AcceptTypePending:
		return AcceptType(s), nil
	}
	return "", fmt.Errorf("invalid accept type %q", s)
}

// CanTransitionTo reports whether a proposal in state a may move to next.
func (a AcceptType) CanTransitionTo(next AcceptType) bool {
	return a == AcceptTypePending && (next == AcceptTypeAccepted || next == AcceptTypeRejected)
}

// UnmarshalJSON rejects unknown accept types.
func (a *AcceptType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("accept type must be a string: %w", err)
	}
	parsed, err := ParseAcceptType(raw)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// UnmarshalBSONValue rejects unknown accept types.
func (a *AcceptType) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw, ok := bson.RawValue{Type: t, Value: data}.StringValueOK()
	if !ok {
		return fmt.Errorf("accept type must be a BSON string, got %s", t)
	}
	parsed, err := ParseAcceptType(raw)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ContactRequest identifies a contact relationship between a finder and an owner over a listing.
type ContactRequest struct {
	ID          string        `bson:"_id" json:"id"`
	FinderID    string        `bson:"finder_id" json:"finderId"`
	OwnerID     string        `bson:"owner_id" json:"ownerId"`
	ListingID   string        `bson:"listing_id" json:"listingId"`
	Status      ContactStatus `bson:"status" json:"status"`
	CreatedAt   string        `bson:"created_at" json:"createdAt"` // Set once by the backend
	FinderPhone *string       `bson:"finder_phone,omitempty" json:"finderPhone,omitempty"`
	OwnerPhone  *string       `bson:"owner_phone,omitempty" json:"ownerPhone,omitempty"`
}

// SendMessage is a landlord's proposal attached to a finder's rental request.
type SendMessage struct {
	SendMessageID   int64      `bson:"send_message_id" json:"sendMessageId"`
	OwnerHouseID    int64      `bson:"owner_house_id" json:"ownerHouseId"`
	FinderRequestID int64      `bson:"finder_request_id" json:"finderRequestId"`
	AcceptType      AcceptType `bson:"accept_type" json:"acceptType"`
	Message         string     `bson:"message" json:"message"`
	CreatedAt       Timestamp  `bson:"created_at" json:"createdAt"`
	UpdatedAt       Timestamp  `bson:"updated_at" json:"updatedAt"`
}

// SendMessageDetail is a read-only projection of SendMessage joined with
// listing (owner_house) and owner attributes. Every joined field is optional
// because the listing may have been removed.
type SendMessageDetail struct {
	SendMessage `bson:",inline"`

	// Listing summary
	HouseTitle       *string `bson:"house_title,omitempty" json:"houseTitle,omitempty"`
	HouseAddress     *string `bson:"house_address,omitempty" json:"houseAddress,omitempty"`
	HousePrice       Amount  `bson:"house_price,omitempty" json:"housePrice,omitempty"`
	HouseDeposit     Amount  `bson:"house_deposit,omitempty" json:"houseDeposit,omitempty"`
	HouseMonthlyRent Amount  `bson:"house_monthly_rent,omitempty" json:"houseMonthlyRent,omitempty"`
	HouseType        *string `bson:"house_type,omitempty" json:"houseType,omitempty"`

	// Owner
	OwnerName  *string `bson:"owner_name,omitempty" json:"ownerName,omitempty"`
	OwnerPhone *string `bson:"owner_phone,omitempty" json:"ownerPhone,omitempty"`

	// owner_house row
	AbangUserID    *string `bson:"abang_user_id,omitempty" json:"abangUserId,omitempty"`
	Address        *string `bson:"address,omitempty" json:"address,omitempty"`
	PriceType      *string `bson:"price_type,omitempty" json:"priceType,omitempty"`
	Deposit        Amount  `bson:"deposit,omitempty" json:"deposit,omitempty"`
	Rent           Amount  `bson:"rent,omitempty" json:"rent,omitempty"`
	IsActive       *bool   `bson:"is_active,omitempty" json:"isActive,omitempty"`
	OpenFrom       *string `bson:"open_from,omitempty" json:"openFrom,omitempty"`
	OpenTo         *string `bson:"open_to,omitempty" json:"openTo,omitempty"`
	HouseCreatedAt *string `bson:"house_created_at,omitempty" json:"houseCreatedAt,omitempty"`
	HouseUpdatedAt *string `bson:"house_updated_at,omitempty" json:"houseUpdatedAt,omitempty"`
}
