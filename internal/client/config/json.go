package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/storefront-client/internal/flagx"
	"github.com/dmitrijs2005/storefront-client/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so JSON can specify the timeout either as a string
// like "15s" or as integer nanoseconds. After parsing, values are copied
// into the runtime Config.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	StateDBPath    string         `json:"state_db_path"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	DeliveryFee    *int64         `json:"delivery_fee"`
	CurrencyLabel  string         `json:"currency_label"`
}

// parseJson overlays cfg with values loaded from a JSON file. The file
// path comes from the -c/-config flags; when absent, nothing is loaded.
// Read or unmarshal errors panic, matching the rest of the config chain
// (a broken config file should stop startup).
//
// Zero-valued JSON fields leave the corresponding Config field untouched,
// except DeliveryFee, which uses a pointer so an explicit 0 still
// applies rather than being silently reinterpreted as "unset".
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.StateDBPath != "" {
		cfg.StateDBPath = jc.StateDBPath
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.DeliveryFee != nil {
		cfg.DeliveryFee = *jc.DeliveryFee
	}
	if jc.CurrencyLabel != "" {
		cfg.CurrencyLabel = jc.CurrencyLabel
	}
}
