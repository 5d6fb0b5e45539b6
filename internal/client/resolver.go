package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/kinvey/cli/pkg/kinvey"
)

// IsUUID reports whether a value looks like a management-plane id. The exact
// length rules matter: 36 characters with dashes or 32 without, nothing else.
// A real entity name could coincidentally parse as a UUID if these rules were
// loosened to a generic validator.
func IsUUID(value string) bool {
	const (
		dash                = "-"
		lengthWithDashes    = 36
		lengthWithoutDashes = 32
	)

	if strings.Contains(value, dash) && len(value) == lengthWithDashes {
		return isUUIDv4(value)
	}

	if len(value) != lengthWithoutDashes {
		return false
	}

	withDashes := value[:8] + dash + value[8:12] + dash + value[12:16] + dash + value[16:20] + dash + value[20:]

	return isUUIDv4(withDashes)
}

func isUUIDv4(value string) bool {
	parsed, err := uuid.Parse(value)
	if err != nil {
		return false
	}

	return parsed.Version() == 4 && parsed.Variant() == uuid.RFC4122
}

// IsEnvID reports whether a value looks like an environment id: a fixed
// 13-character token such as kid_SklZwh7dN.
func IsEnvID(value string) bool {
	const envIDLength = 13

	return len(value) == envIDLength && strings.HasPrefix(value, "kid_")
}

// resolveSpec parametrizes entity resolution for one family.
type resolveSpec struct {
	itemType       kinvey.ItemType
	listEndpoint   string
	singleEndpoint func(id string) string
	looksLikeID    func(string) bool
}

// namedEntity is the minimal shape shared by every management entity.
type namedEntity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// resolveByIdOrName disambiguates a free-form identifier. An absent
// identifier falls back to the persisted active item for the family. An
// id-shaped identifier is fetched directly via the single-resource endpoint;
// anything else is matched case-sensitively by exact name against the full
// list. The result is unmarshaled into out.
func (s *entityService) resolveByIdOrName(ctx context.Context, identifier string, spec resolveSpec, out interface{}) error {
	if identifier == "" {
		item, ok := s.session.ActiveItem(spec.itemType)
		if !ok {
			return kinvey.NewItemNotSpecifiedError(spec.itemType)
		}

		identifier = item.ID
		if identifier == "" {
			identifier = item.Name
		}
	}

	if spec.looksLikeID(identifier) {
		return s.fetchByID(ctx, identifier, spec, out)
	}

	return s.fetchByName(ctx, identifier, spec, out)
}

func (s *entityService) fetchByID(ctx context.Context, identifier string, spec resolveSpec, out interface{}) error {
	resp, err := s.httpClient.Get(ctx, spec.singleEndpoint(identifier), nil)
	if err != nil {
		kinveyErr := &kinvey.Error{}
		if errors.As(err, &kinveyErr) && kinveyErr.Status == http.StatusNotFound {
			return kinvey.NewNotFoundError(spec.itemType, identifier)
		}

		return err
	}

	err = json.Unmarshal(resp.Body, out)
	if err != nil {
		return fmt.Errorf("parsing %s response: %w", spec.itemType, err)
	}

	return nil
}

func (s *entityService) fetchByName(ctx context.Context, identifier string, spec resolveSpec, out interface{}) error {
	resp, err := s.httpClient.Get(ctx, spec.listEndpoint, nil)
	if err != nil {
		return err
	}

	var raw []json.RawMessage

	err = json.Unmarshal(resp.Body, &raw)
	if err != nil {
		return fmt.Errorf("parsing %s list response: %w", spec.itemType, err)
	}

	var matches []json.RawMessage

	for _, item := range raw {
		var entity namedEntity

		err = json.Unmarshal(item, &entity)
		if err != nil {
			return fmt.Errorf("parsing %s list item: %w", spec.itemType, err)
		}

		if entity.Name == identifier {
			matches = append(matches, item)
		}
	}

	switch len(matches) {
	case 0:
		return kinvey.NewNotFoundError(spec.itemType, identifier)
	case 1:
		err = json.Unmarshal(matches[0], out)
		if err != nil {
			return fmt.Errorf("parsing %s response: %w", spec.itemType, err)
		}

		return nil
	default:
		return kinvey.NewTooManyFoundError(spec.itemType, identifier)
	}
}
