package backend

import (
	"context"
	"net/http"
)

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type ContactResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (c *Client) SendContact(ctx context.Context, creds Credentials, request ContactRequest) (ContactResult, error) {

	resp, err := c.sendRequest(ctx, "send_contact", http.MethodPost, "/contact", nil, creds, request)
	if err != nil {
		return ContactResult{}, err
	}

	return decode[ContactResult]("send_contact", resp.body)
}
