package auth

import (
	"encoding/base64"
	"fmt"
)

// BasicAuthToken derives the data-plane credential for an environment:
// base64(envId:masterSecret). Calls scoped to an environment's data plane
// send it as "Authorization: Basic <token>".
func BasicAuthToken(envID, masterSecret string) string {
	pair := fmt.Sprintf("%s:%s", envID, masterSecret)

	return base64.StdEncoding.EncodeToString([]byte(pair))
}
