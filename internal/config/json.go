package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations.
type StructuredJSONConfig struct {
	App struct {
		Version string `json:"version"`
		Env     string `json:"env"`
	} `json:"app,omitempty"`

	Auth struct {
		JWTPrivateKey     string   `json:"jwt_private_key"`
		JWTPrivateKeyPath string   `json:"jwt_private_key_path"`
		JWTPublicKey      string   `json:"jwt_public_key"`
		JWTPublicKeyPath  string   `json:"jwt_public_key_path"`
		TokenIssuer       string   `json:"token_issuer"`
		AccessTokenTTL    Duration `json:"access_token_ttl"`
		RefreshTokenTTL   Duration `json:"refresh_token_ttl"`
		BcryptCost        int      `json:"bcrypt_cost"`
		OTPTTL            Duration `json:"otp_ttl"`
		OTPHashKey        string   `json:"otp_hash_key"`
		ExposeOTP         bool     `json:"expose_otp"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		OTPDelivery string `json:"otp_delivery"`
		SMS         struct {
			BaseURL string   `json:"base_url"`
			APIKey  string   `json:"api_key"`
			Sender  string   `json:"sender"`
			Timeout Duration `json:"timeout"`
		} `json:"sms,omitempty"`
		Kafka struct {
			Brokers []string `json:"brokers"`
			Topic   string   `json:"topic"`
		} `json:"kafka,omitempty"`
	} `json:"adapter,omitempty"`

	Workers struct {
		OTPSweepInterval Duration `json:"otp_sweep_interval"`
	} `json:"workers,omitempty"`

	Seed struct {
		AdminEmail    string `json:"admin_email"`
		AdminPassword string `json:"admin_password"`
	} `json:"seed,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version: jsonCfg.App.Version,
			Env:     jsonCfg.App.Env,
		},
		Auth: Auth{
			JWTPrivateKey:     jsonCfg.Auth.JWTPrivateKey,
			JWTPrivateKeyPath: jsonCfg.Auth.JWTPrivateKeyPath,
			JWTPublicKey:      jsonCfg.Auth.JWTPublicKey,
			JWTPublicKeyPath:  jsonCfg.Auth.JWTPublicKeyPath,
			TokenIssuer:       jsonCfg.Auth.TokenIssuer,
			AccessTokenTTL:    time.Duration(jsonCfg.Auth.AccessTokenTTL),
			RefreshTokenTTL:   time.Duration(jsonCfg.Auth.RefreshTokenTTL),
			BcryptCost:        jsonCfg.Auth.BcryptCost,
			OTPTTL:            time.Duration(jsonCfg.Auth.OTPTTL),
			OTPHashKey:        jsonCfg.Auth.OTPHashKey,
			ExposeOTP:         jsonCfg.Auth.ExposeOTP,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			OTPDelivery: jsonCfg.Adapter.OTPDelivery,
			SMS: SMS{
				BaseURL: jsonCfg.Adapter.SMS.BaseURL,
				APIKey:  jsonCfg.Adapter.SMS.APIKey,
				Sender:  jsonCfg.Adapter.SMS.Sender,
				Timeout: time.Duration(jsonCfg.Adapter.SMS.Timeout),
			},
			Kafka: Kafka{
				Brokers: jsonCfg.Adapter.Kafka.Brokers,
				Topic:   jsonCfg.Adapter.Kafka.Topic,
			},
		},
		Workers: Workers{
			OTPSweepInterval: time.Duration(jsonCfg.Workers.OTPSweepInterval),
		},
		Seed: Seed{
			AdminEmail:    jsonCfg.Seed.AdminEmail,
			AdminPassword: jsonCfg.Seed.AdminPassword,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
