package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/kinvey/cli/internal/client"
	"github.com/kinvey/cli/internal/constants"
	"github.com/kinvey/cli/pkg/kinvey"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// newClient builds a management client from viper configuration. The host is
// taken from --host, then --instance, then the KINVEY_CLI_INSTANCE
// environment variable, falling back to the default instance.
func newClient() (*client.Client, error) {
	host := viper.GetString("host")
	instance := viper.GetString("instance")

	if instance == "" {
		instance = os.Getenv(constants.EnvInstance)
	}

	switch {
	case host != "":
		host = client.FormatHost(host)
	case instance != "":
		host = client.FormatHost(instance)
	default:
		host = constants.DefaultHost
		instance = constants.DefaultInstance
	}

	baasHost := os.Getenv(constants.EnvBaas)
	if baasHost == "" && instance != "" {
		baasHost = client.BaasHostFor(instance)
	}

	config := &kinvey.Config{
		Host:          host,
		BaasHost:      baasHost,
		SchemaVersion: viper.GetInt("schema_version"),
		Timeout:       viper.GetDuration("timeout"),
		SessionPath:   viper.GetString("session_path"),
	}

	// Only offer interactive prompts on a real terminal; scripted runs rely
	// on environment-sourced credentials.
	if interactive() {
		config.Prompter = newTerminalPrompter()
	}

	if viper.GetBool("verbose") {
		config.Logger = stderrLogger{}
	}

	return client.New(config)
}

// renderOutput writes data as json or yaml when requested; otherwise it
// calls the table renderer.
func renderOutput(data interface{}, renderTable func()) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		err := encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("encoding JSON output: %w", err)
		}

		return nil
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		err := encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("encoding YAML output: %w", err)
		}

		return nil
	default:
		renderTable()
	}

	return nil
}

func printTable(headers []string, rows [][]string) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header(toAnySlice(headers)...)

	for _, row := range rows {
		_ = table.Append(toAnySlice(row)...)
	}

	_ = table.Render()
}

func toAnySlice(values []string) []interface{} {
	result := make([]interface{}, len(values))
	for i, v := range values {
		result[i] = v
	}

	return result
}

// stderrLogger writes leveled output to stderr for --verbose runs.
type stderrLogger struct{}

func (stderrLogger) Debug(msg string, fields map[string]interface{}) { logLine("DEBUG", msg, fields) }
func (stderrLogger) Info(msg string, fields map[string]interface{})  { logLine("INFO", msg, fields) }
func (stderrLogger) Warn(msg string, fields map[string]interface{})  { logLine("WARN", msg, fields) }
func (stderrLogger) Error(msg string, fields map[string]interface{}) { logLine("ERROR", msg, fields) }

func logLine(level, msg string, fields map[string]interface{}) {
	if len(fields) == 0 {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", level, msg)

		return
	}

	fmt.Fprintf(os.Stderr, "[%s] %s %v\n", level, msg, fields)
}
