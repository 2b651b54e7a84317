package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/ekazarova/rolodex/internal/flagx"
	"github.com/ekazarova/rolodex/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so the latency bounds can be specified either as strings
// like "800ms" or as integer nanoseconds. Pointer fields distinguish "absent"
// from "zero" so partial files only override what they mention.
type JsonConfig struct {
	BackendBaseURL *string `json:"backend_base_url"`

	Storage     *string `json:"storage"`
	SQLiteDSN   *string `json:"sqlite_dsn"`
	PostgresDSN *string `json:"postgres_dsn"`
	S3Bucket    *string `json:"s3_bucket"`
	S3Key       *string `json:"s3_key"`
	S3Region    *string `json:"s3_region"`
	S3Endpoint  *string `json:"s3_endpoint"`

	LatencyMin *timex.Duration `json:"latency_min"`
	LatencyMax *timex.Duration `json:"latency_max"`

	LogLevel *string `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c/-config flags via flagx.JsonConfigFlags();
// if no path is given the function returns without touching cfg. Read or
// unmarshal errors panic (caller should recover if desired).
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

	setIf(&cfg.BackendBaseURL, jc.BackendBaseURL)
	setIf(&cfg.Storage, jc.Storage)
	setIf(&cfg.SQLiteDSN, jc.SQLiteDSN)
	setIf(&cfg.PostgresDSN, jc.PostgresDSN)
	setIf(&cfg.S3Bucket, jc.S3Bucket)
	setIf(&cfg.S3Key, jc.S3Key)
	setIf(&cfg.S3Region, jc.S3Region)
	setIf(&cfg.S3Endpoint, jc.S3Endpoint)
	setIf(&cfg.LogLevel, jc.LogLevel)
	if jc.LatencyMin != nil {
		cfg.LatencyMin = time.Duration(jc.LatencyMin.Duration)
	}
	if jc.LatencyMax != nil {
		cfg.LatencyMax = time.Duration(jc.LatencyMax.Duration)
	}
}

func setIf(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
