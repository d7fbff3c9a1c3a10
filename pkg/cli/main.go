package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	path "path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/guaychou/coult/pkg/logger"
	"github.com/guaychou/coult/pkg/vault"
)

var (
	// Build time parameters
	BuildVersion   string
	BuildTimestamp string

	filename = path.Base(os.Args[0])

	app = kingpin.New(filename, fmt.Sprintf(`Description:
	Fetches a secret from HashiCorp Vault and prints it to STDOUT as JSON,
	or prints a single field of it with --field.

	Options left unset fall back to the environment variables named next to
	each flag; a .env file in the working directory is loaded first, if
	present.

Usage:
	Fetch a KV v2 secret:
		%v --token="dead-c0de" --path="secret/data/jenkins" 

	Fetch one field of a KV v1 secret over https:
		%v --protocol="https" --host="vault.service" --path="secret/jenkins" --kv-version=1 --field="password"
`, filename, filename))

	host       = app.Flag("host", "Vault host, like vault.service.consul (VAULT_ADDR)").String()
	port       = app.Flag("port", "Vault port (VAULT_PORT)").String()
	protocol   = app.Flag("protocol", "Connection protocol, http or https (VAULT_PROTOCOL)").String()
	token      = app.Flag("token", "The token used to fetch the secret (VAULT_TOKEN)").String()
	secretPath = app.Flag("path", "The vault path for the secret, like 'secret/data/jenkins/dev/user/admin' (VAULT_SECRET_PATH)").String()
	kvVersion  = app.Flag("kv-version", "KV engine version of the secret mount").Default("2").Enum("1", "2")
	field      = app.Flag("field", "Print only this field of the secret instead of the full JSON payload").String()
	timeout    = app.Flag("timeout", "Per-request timeout, like 5s. Zero uses the transport defaults.").Duration()
	insecure   = app.Flag("skip-verify", "Skip SSL certificate verification").Bool()
	logLevel   = app.Flag("log-level", "Logging level, one of: panic, fatal, error, warn, info, debug").Default("error").String()
)

// Run parses the cli arguments, builds a vault client, and performs the
// fetch. Errors bubble up to main for the non-zero exit.
func Run(ctx context.Context, args []string) error {
	app.Version(fmt.Sprintf("%v v%v built on %v", filename, BuildVersion, BuildTimestamp))
	kingpin.MustParse(app.Parse(args[1:]))

	if err := logger.SetLoggingLevel(*logLevel); err != nil {
		return fmt.Errorf("could not parse --log-level string '%v': %w", *logLevel, err)
	}

	// Load .env before the resolver consults the environment. A missing
	// file is not an error.
	if err := godotenv.Load(); err == nil {
		logger.Debugf("Loaded environment from .env")
	}

	client, err := vault.NewVaultClient(ctx, vault.Config{
		Protocol:   *protocol,
		Host:       *host,
		Port:       *port,
		Token:      *token,
		SecretPath: *secretPath,
		Insecure:   *insecure,
		Timeout:    *timeout,
	})
	if err != nil {
		return err
	}

	logger.Infof("Fetch secrets from %v ...", client.Config().SecretPath)

	var data map[string]interface{}
	switch *kvVersion {
	case "1":
		data, err = vault.GetSecret[map[string]interface{}](client)
	default:
		data, err = vault.GetSecretV2[map[string]interface{}](client)
	}
	if err != nil {
		return err
	}

	if *field != "" {
		value, ok := data[*field]
		if !ok {
			return fmt.Errorf("field '%v' is not present in the secret at %v", *field, client.Config().SecretPath)
		}

		fmt.Println(value)
		return nil
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(out))
	return nil
}
