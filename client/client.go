// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/danielhkuo/pollroom/models"
)

// Typed errors decoded from the server's machine-readable error codes.
// Callers branch with errors.Is.
var (
	ErrUnauthorized        = errors.New("invalid or missing credential")
	ErrNoIdentity          = errors.New("no usable identity")
	ErrBanned              = errors.New("banned from room")
	ErrNotCreator          = errors.New("not the room creator")
	ErrQuestionClosed      = errors.New("question is not accepting votes")
	ErrAlreadyVoted        = errors.New("already voted on this question")
	ErrChoiceNotInQuestion = errors.New("choice does not belong to question")
	ErrNotFound            = errors.New("not found")
)

// Client talks to a pollroom server. The zero value is not usable;
// BaseURL is required. Identity is whichever of Token or GuestNickname
// is set - when both are set the server ignores the nickname, same as
// it does for requests.
type Client struct {
	BaseURL       string
	Token         string
	GuestNickname string

	// HTTPClient defaults to http.DefaultClient when nil.
	HTTPClient *http.Client
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// FetchSnapshot fetches the visibility-filtered room snapshot. This is
// the polling endpoint; everything the viewer is allowed to see comes
// back in one response.
func (c *Client) FetchSnapshot(ctx context.Context, slug string) (*models.RoomView, error) {
	path := "/rooms/" + url.PathEscape(slug)
	if c.GuestNickname != "" {
		path += "?guest_nickname=" + url.QueryEscape(c.GuestNickname)
	}

	var view models.RoomView
	if err := c.do(ctx, http.MethodGet, path, nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// ListRooms fetches the public room directory
func (c *Client) ListRooms(ctx context.Context) ([]models.RoomSummary, error) {
	var rooms []models.RoomSummary
	if err := c.do(ctx, http.MethodGet, "/rooms", nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// CreateRoom creates a room owned by the credentialed account
func (c *Client) CreateRoom(ctx context.Context, req models.CreateRoomRequest) (*models.Room, error) {
	var room models.Room
	if err := c.do(ctx, http.MethodPost, "/rooms", req, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// DeleteRoom deletes a room and everything under it (creator only)
func (c *Client) DeleteRoom(ctx context.Context, slug string) error {
	return c.do(ctx, http.MethodDelete, "/rooms/"+url.PathEscape(slug), nil, nil)
}

// Ban adds a nickname or display name to the room's ban list (creator only)
func (c *Client) Ban(ctx context.Context, slug, nickname string) error {
	return c.do(ctx, http.MethodPost, "/rooms/"+url.PathEscape(slug)+"/ban",
		models.BanRequest{Nickname: nickname}, nil)
}

// CreateQuestion adds a question to a room (creator only)
func (c *Client) CreateQuestion(ctx context.Context, roomID, text string) (*models.Question, error) {
	var q models.Question
	err := c.do(ctx, http.MethodPost, "/questions",
		models.CreateQuestionRequest{RoomID: roomID, Text: text}, &q)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// PatchQuestion toggles is_active and/or show_results (creator only)
func (c *Client) PatchQuestion(ctx context.Context, questionID string, req models.PatchQuestionRequest) (*models.Question, error) {
	var q models.Question
	err := c.do(ctx, http.MethodPatch, "/questions/"+url.PathEscape(questionID), req, &q)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// CreateChoice adds a choice to a question (creator only)
func (c *Client) CreateChoice(ctx context.Context, questionID, text string) (*models.Choice, error) {
	var choice models.Choice
	err := c.do(ctx, http.MethodPost, "/choices",
		models.CreateChoiceRequest{QuestionID: questionID, Text: text}, &choice)
	if err != nil {
		return nil, err
	}
	return &choice, nil
}

// CastVote casts this client's vote for a choice. The guest nickname
// travels in the body; the server resolves the credential first.
func (c *Client) CastVote(ctx context.Context, choiceID string) (*models.CastVoteResponse, error) {
	var resp models.CastVoteResponse
	err := c.do(ctx, http.MethodPost, "/votes",
		models.CastVoteRequest{ChoiceID: choiceID, GuestNickname: c.GuestNickname}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// do runs one request/response cycle. Error statuses are decoded into
// the typed error set so callers never inspect response bodies.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var body models.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)

	switch body.Code {
	case models.CodeNoIdentity:
		return fmt.Errorf("%w: %s", ErrNoIdentity, body.Message)
	case models.CodeBanned:
		return fmt.Errorf("%w: %s", ErrBanned, body.Message)
	case models.CodeNotCreator:
		return fmt.Errorf("%w: %s", ErrNotCreator, body.Message)
	case models.CodeQuestionClosed:
		return fmt.Errorf("%w: %s", ErrQuestionClosed, body.Message)
	case models.CodeAlreadyVoted:
		return fmt.Errorf("%w: %s", ErrAlreadyVoted, body.Message)
	case models.CodeChoiceNotInQuestion:
		return fmt.Errorf("%w: %s", ErrChoiceNotInQuestion, body.Message)
	case models.CodeNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body.Message)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body.Message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body.Message)
	}
	return fmt.Errorf("server returned %d: %s", resp.StatusCode, body.Message)
}
