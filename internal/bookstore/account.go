package bookstore

import (
	"context"
	"net/http"

	"github.com/dtroode/bookswap-agent/internal/model"
)

type profileRequest struct {
	ID string `json:"id"`
}

type updateProfileResponse struct {
	UpdatedUser *model.UserProfile `json:"updated_user"`
}

// CreateOrder checks out the user's cart.
func (c *Client) CreateOrder(ctx context.Context, id model.Identity, req model.OrderRequest) (model.OrderResult, error) {
	var result model.OrderResult
	err := c.do(ctx, call{
		operation: "create_order",
		method:    http.MethodPost,
		path:      "orderops/createorder",
		bearer:    id.Bearer,
		payload:   req,
		mutation:  true,
	}, &result)
	if err != nil {
		return model.OrderResult{}, err
	}
	return result, nil
}

// Profile fetches the identity's user record.
func (c *Client) Profile(ctx context.Context, id model.Identity) (model.UserProfile, error) {
	var profile model.UserProfile
	err := c.do(ctx, call{
		operation: "get_profile",
		method:    http.MethodPost,
		path:      "usercrud/getuserbyid",
		bearer:    id.Bearer,
		payload:   profileRequest{ID: id.UserID},
	}, &profile)
	if err != nil {
		return model.UserProfile{}, err
	}
	return profile, nil
}

// UpdateProfile sends upd and returns the record the service stored.
func (c *Client) UpdateProfile(ctx context.Context, id model.Identity, upd model.ProfileUpdate) (model.UserProfile, error) {
	var resp updateProfileResponse
	err := c.do(ctx, call{
		operation: "update_profile",
		method:    http.MethodPut,
		path:      "usercrud/updateprofile",
		bearer:    id.Bearer,
		payload:   upd,
		mutation:  true,
	}, &resp)
	if err != nil {
		return model.UserProfile{}, err
	}
	if resp.UpdatedUser == nil {
		return model.UserProfile{}, &model.RemoteError{
			Kind:      model.RemoteMutationFailed,
			Operation: "update_profile",
			Message:   "unexpected response from bookstore",
			Err:       errMissingField,
		}
	}
	return *resp.UpdatedUser, nil
}
