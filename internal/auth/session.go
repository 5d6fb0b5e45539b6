// Package auth owns the session lifecycle: interactive and environment-based
// login, the persisted session file keyed by host, and the active-item
// records consulted when a command omits an identifier.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kinvey/cli/internal/constants"
	kinveyhttp "github.com/kinvey/cli/internal/http"
	"github.com/kinvey/cli/pkg/kinvey"
)

// Static errors for err113 compliance.
var (
	ErrNoHTTPClient       = errors.New("no HTTP client attached to session store")
	ErrNoPrompter         = errors.New("credentials are missing and no prompter is configured")
	ErrNoSessionPath      = errors.New("no session file path configured")
	ErrInvalidItemType    = errors.New("invalid active item type")
	ErrEmptyLoginResponse = errors.New("login response contained no token")
)

// Store is a state machine over {NoSession, Authenticated}. It persists
// tokens keyed by host and restores them on demand, logging in interactively
// only when no usable token exists.
type Store struct {
	host       string
	path       string
	prompter   kinvey.CredentialPrompter
	logger     kinvey.Logger
	httpClient *kinveyhttp.Client
	record     kinvey.SessionRecord
	restored   bool
}

// NewStore creates a session store for the given host, persisting to path.
func NewStore(host, path string, prompter kinvey.CredentialPrompter, logger kinvey.Logger) *Store {
	if logger == nil {
		logger = kinvey.NoopLogger{}
	}

	return &Store{
		host:     host,
		path:     path,
		prompter: prompter,
		logger:   logger,
		record: kinvey.SessionRecord{
			Host:   host,
			Tokens: map[string]string{},
		},
	}
}

// AttachClient wires the request executor. The store and the executor
// reference each other (the executor asks the store for tokens), so wiring
// happens in two steps.
func (s *Store) AttachClient(client *kinveyhttp.Client) {
	s.httpClient = client
}

// GetToken implements http.TokenProvider. A missing token triggers Restore,
// which in turn may force an interactive login.
func (s *Store) GetToken(ctx context.Context) (string, error) {
	if s.IsLoggedIn() {
		return s.record.Tokens[s.host], nil
	}

	err := s.Restore(ctx)
	if err != nil {
		return "", err
	}

	return s.record.Tokens[s.host], nil
}

// Token returns the in-memory token for the current host, if any.
func (s *Store) Token() string {
	return s.record.Tokens[s.host]
}

// IsLoggedIn reports whether a current host and a non-empty token for that
// host are set.
func (s *Store) IsLoggedIn() bool {
	return s.host != "" && s.record.Tokens[s.host] != ""
}

// Login authenticates against the session endpoint. Missing credentials are
// taken from the environment, then from the prompter. On a two-factor
// challenge the prompter collects a 6-digit token and login is retried once
// with it. On invalid credentials, interactive logins get exactly one
// re-prompt; environment-sourced logins fail immediately.
func (s *Store) Login(ctx context.Context, email, password string) error {
	if s.httpClient == nil {
		return ErrNoHTTPClient
	}

	argsProvided := email != "" || password != ""

	if email == "" {
		email = os.Getenv(constants.EnvEmail)
	}

	if password == "" {
		password = os.Getenv(constants.EnvPassword)
	}

	envOnly := !argsProvided && email != "" && password != ""

	if email == "" || password == "" {
		if s.prompter == nil {
			return ErrNoPrompter
		}

		var err error

		email, password, err = s.prompter.EmailPassword(email, password)
		if err != nil {
			return fmt.Errorf("collecting credentials: %w", err)
		}

		envOnly = false
	}

	result, err := s.doLogin(ctx, email, password, "")

	if kinvey.IsMFATokenError(err) && s.prompter != nil {
		var mfaToken string

		mfaToken, err = s.prompter.MFAToken()
		if err != nil {
			return fmt.Errorf("collecting two-factor token: %w", err)
		}

		result, err = s.doLogin(ctx, email, password, mfaToken)
	}

	if kinvey.IsInvalidCredentials(err) && !envOnly && s.prompter != nil {
		email, password, err = s.prompter.EmailPassword("", "")
		if err != nil {
			return fmt.Errorf("collecting credentials: %w", err)
		}

		result, err = s.doLogin(ctx, email, password, "")
	}

	if err != nil {
		return err
	}

	s.record.Host = s.host
	s.record.Tokens[s.host] = result.Token
	s.logger.Debug("Logged in", map[string]interface{}{"email": result.Email, "host": s.host})

	return s.save()
}

// Logout clears the token for the current host and writes a cleared session
// record. The server-side session delete is best effort.
func (s *Store) Logout(ctx context.Context) error {
	if s.httpClient != nil && s.IsLoggedIn() {
		_, err := s.httpClient.Delete(ctx, constants.SessionEndpoint)
		if err != nil {
			s.logger.Warn("Failed to delete server-side session", map[string]interface{}{"error": err.Error()})
		}
	}

	delete(s.record.Tokens, s.host)
	s.record.ActiveItems = nil

	return s.save()
}

// Restore reads the persisted session file. If the file is absent, empty, or
// holds no token for the current host, an interactive or environment-based
// login is forced.
func (s *Store) Restore(ctx context.Context) error {
	if !s.restored {
		s.load()
		s.restored = true
	}

	if s.IsLoggedIn() {
		return nil
	}

	return s.Login(ctx, "", "")
}

// Refresh forces a fresh login and persists regardless of whether the
// previous token existed. Used when a token is known to be stale.
func (s *Store) Refresh(ctx context.Context) error {
	delete(s.record.Tokens, s.host)

	err := s.Login(ctx, "", "")
	if err != nil {
		return err
	}

	return s.save()
}

// ActiveItem returns the persisted active item for the given type.
func (s *Store) ActiveItem(itemType kinvey.ItemType) (*kinvey.ActiveItem, bool) {
	if !s.restored {
		s.load()
		s.restored = true
	}

	item, ok := s.record.ActiveItems[itemType]
	if !ok || item == nil {
		return nil, false
	}

	return item, true
}

// SetActiveItem records the active item of the given type. Activating an app
// clears an active environment selected under a different app.
func (s *Store) SetActiveItem(itemType kinvey.ItemType, item *kinvey.ActiveItem) error {
	if !validActiveItemType(itemType) {
		return fmt.Errorf("%w: %s", ErrInvalidItemType, itemType)
	}

	if s.record.ActiveItems == nil {
		s.record.ActiveItems = map[kinvey.ItemType]*kinvey.ActiveItem{}
	}

	if itemType == kinvey.ItemTypeApp {
		env, ok := s.record.ActiveItems[kinvey.ItemTypeEnv]
		if ok && env != nil && env.AppID != item.ID {
			delete(s.record.ActiveItems, kinvey.ItemTypeEnv)
		}
	}

	s.record.ActiveItems[itemType] = item

	return s.save()
}

// RemoveActiveItem clears the active item of the given type.
func (s *Store) RemoveActiveItem(itemType kinvey.ItemType) error {
	if !validActiveItemType(itemType) {
		return fmt.Errorf("%w: %s", ErrInvalidItemType, itemType)
	}

	delete(s.record.ActiveItems, itemType)

	return s.save()
}

func validActiveItemType(itemType kinvey.ItemType) bool {
	for _, t := range kinvey.ActiveItemTypes {
		if t == itemType {
			return true
		}
	}

	return false
}

func (s *Store) doLogin(ctx context.Context, email, password, mfaToken string) (*kinvey.LoginResponse, error) {
	req := &kinveyhttp.Request{
		Method:   "POST",
		Path:     constants.SessionEndpoint,
		Body:     kinvey.LoginRequest{Email: email, Password: password, TwoFactorToken: mfaToken},
		SkipAuth: true,
	}

	resp, err := s.httpClient.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	var result kinvey.LoginResponse

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing login response: %w", err)
	}

	if result.Token == "" {
		return nil, ErrEmptyLoginResponse
	}

	return &result, nil
}

// load reads the session file. Missing or malformed files leave the store in
// NoSession; Restore handles the consequence.
func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var record kinvey.SessionRecord

	err = json.Unmarshal(data, &record)
	if err != nil {
		s.logger.Warn("Invalid session file", map[string]interface{}{"path": s.path})

		return
	}

	if record.Tokens == nil {
		record.Tokens = map[string]string{}
	}

	record.Host = s.host
	s.record = record
}

// save persists the session record with an atomic whole-file replace so a
// crash mid-write cannot corrupt the session store.
func (s *Store) save() error {
	if s.path == "" {
		return ErrNoSessionPath
	}

	data, err := json.Marshal(s.record)
	if err != nil {
		return fmt.Errorf("marshaling session record: %w", err)
	}

	dir := filepath.Dir(s.path)

	err = os.MkdirAll(dir, constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("creating temp session file: %w", err)
	}

	_, err = tmp.Write(data)
	if err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("writing session file: %w", err)
	}

	err = tmp.Close()
	if err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("closing session file: %w", err)
	}

	err = os.Chmod(tmp.Name(), constants.SessionFilePerm)
	if err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("setting session file permissions: %w", err)
	}

	err = os.Rename(tmp.Name(), s.path)
	if err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("replacing session file: %w", err)
	}

	return nil
}
