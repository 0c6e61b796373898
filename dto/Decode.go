package dto

import "farm-market-session/model"

// DecodeRequest is the JSON payload sent to /token/decode
type DecodeRequest struct {
	Token string `json:"token" validate:"required"`
}

type DecodeResponse struct {
	Payload model.JwtPayload `json:"payload"`
	Expired bool             `json:"expired"`
}
