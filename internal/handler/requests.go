package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/helpinghands/backend/internal/model"
)

// flexBool accepts true/false, 1/0 and their quoted forms. Admin clients
// historically send the numeric flag.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	switch strings.ToLower(s) {
	case "true", "1":
		*b = true
	case "false", "0":
		*b = false
	default:
		return fmt.Errorf("invalid boolean %s", data)
	}
	return nil
}

func (b *flexBool) ptr() *bool {
	if b == nil {
		return nil
	}
	v := bool(*b)
	return &v
}

// flexID accepts a numeric id or its string form.
type flexID int64

func (id *flexID) UnmarshalJSON(data []byte) error {
	n, err := strconv.ParseInt(strings.Trim(string(bytes.TrimSpace(data)), `"`), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %s", data)
	}
	*id = flexID(n)
	return nil
}

type donorRequest struct {
	Name        *string   `json:"name"`
	Email       *string   `json:"email"`
	Location    *string   `json:"location"`
	Phone       *string   `json:"phone"`
	PaymentRef  *string   `json:"creditcart"`
	IsApproved  *flexBool `json:"isApproved"`
	Description *string   `json:"description"`
}

func (req donorRequest) patch() model.DonorPatch {
	return model.DonorPatch{
		Name:        req.Name,
		Email:       req.Email,
		Location:    req.Location,
		Phone:       req.Phone,
		PaymentRef:  req.PaymentRef,
		IsApproved:  req.IsApproved.ptr(),
		Description: req.Description,
	}
}

func (req donorRequest) donor() *model.Donor {
	d := &model.Donor{}
	req.patch().Apply(d)
	return d
}

type needyRequest struct {
	Name            *string   `json:"name"`
	Email           *string   `json:"email"`
	Location        *string   `json:"location"`
	Phone           *string   `json:"phone"`
	IsApproved      *flexBool `json:"isApproved"`
	Description     *string   `json:"description"`
	PDF             *string   `json:"pdf"`
	BankTransferRef *string   `json:"bankTransferRef"`

	// documentPath is set by the server after storing an uploaded file.
	documentPath *string
}

func (req needyRequest) patch() model.NeedyPatch {
	return model.NeedyPatch{
		Name:            req.Name,
		Email:           req.Email,
		Location:        req.Location,
		Phone:           req.Phone,
		IsApproved:      req.IsApproved.ptr(),
		Description:     req.Description,
		PDF:             req.PDF,
		DocumentPath:    req.documentPath,
		BankTransferRef: req.BankTransferRef,
	}
}

func (req needyRequest) needy() *model.Needy {
	n := &model.Needy{}
	req.patch().Apply(n)
	return n
}

type approveRequest struct {
	ID         flexID    `json:"id"`
	UserType   string    `json:"userType"`
	IsApproved *flexBool `json:"isApproved"`
}

type paymentIntentRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type paymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type contactResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	MessageID string `json:"messageId"`
}

type messageResponse struct {
	Message string `json:"message"`
}

var _ json.Unmarshaler = (*flexBool)(nil)
