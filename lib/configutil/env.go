package configutil

import (
	"fmt"
	"os"
	"strings"

	configlibsql "moneyplatforms/lib/configutil/libsql"

	"github.com/titanous/json5"
)

const (
	EnvCredentials = "PLATFORMS_DB_CREDENTIALS"
	EnvProjectID   = "PLATFORMS_PROJECT_ID"
	EnvCollection  = "PLATFORMS_COLLECTION"
	EnvAnthropic   = "ANTHROPIC_API_KEY"
)

// Env is the configuration every job reads at startup. All of it comes
// from environment variables, not files; the jobs run inside CI where
// secrets are only available through the environment.
type Env struct {
	Credentials configlibsql.Struct
	ProjectID   string
	Collection  string
	// only required by the sourcing job, see FromEnv.
	AnthropicKey string
}

// FromEnv validates and loads the required environment variables,
// reporting every missing one at once. Pass needLLM for jobs that talk
// to the messages API.
func FromEnv(needLLM bool) (Env, error) {
	required := []string{EnvCredentials, EnvProjectID, EnvCollection}
	if needLLM {
		required = append(required, EnvAnthropic)
	}

	var missing []string
	for _, name := range required {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return Env{}, fmt.Errorf(
			"missing required environment variables: %s",
			strings.Join(missing, ", "),
		)
	}

	var creds configlibsql.Struct
	err := json5.Unmarshal([]byte(os.Getenv(EnvCredentials)), &creds)
	if err != nil {
		return Env{}, fmt.Errorf("%s is not a valid credential blob: %w", EnvCredentials, err)
	}

	return Env{
		Credentials:  creds,
		ProjectID:    os.Getenv(EnvProjectID),
		Collection:   os.Getenv(EnvCollection),
		AnthropicKey: os.Getenv(EnvAnthropic),
	}, nil
}
