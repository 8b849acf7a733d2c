package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host      string `yaml:"host" json:"host"`
	Port      int    `yaml:"port" json:"port"`
	Secret    string `yaml:"secret" json:"secret"`
	PublicURL string `yaml:"public_url" json:"public_url"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type SmtpConfig struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	From     string `yaml:"from" json:"from"`
	To       string `yaml:"to" json:"to"`
}

type WebhookConfig struct {
	ContactURL string `yaml:"contact_url" json:"contact_url"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig     `yaml:"system" json:"system"`
	Web      WebConfig     `yaml:"web" json:"web"`
	Database DBConfig      `yaml:"database" json:"database"`
	Smtp     SmtpConfig    `yaml:"smtp" json:"smtp"`
	Webhook  WebhookConfig `yaml:"webhook" json:"webhook"`
	Logger   LogConfig     `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "cafeteca",
		Location: "Europe/Bucharest",
		Workdir:  "/var/cafeteca",
		Debug:    true,
	},
	Web: WebConfig{
		Host:      "0.0.0.0",
		Port:      1898,
		Secret:    "9b6de5cc-demo-1898-lhzd-a1b2c3d4e5f6",
		PublicURL: "http://127.0.0.1:1898",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "cafeteca",
		User:     "postgres",
		Passwd:   "root",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/cafeteca/cafeteca.log",
	},
}

func setEnvValue(name string, f func(v string)) {
	if v, ok := os.LookupEnv(name); ok {
		f(v)
	}
}

// LoadConfig reads the YAML configuration file and applies environment
// variable overrides. A missing file yields the built-in defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvValue("CAFETECA_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("CAFETECA_SYSTEM_DEBUG", func(v string) { cfg.System.Debug = cast.ToBool(v) })
	setEnvValue("CAFETECA_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvValue("CAFETECA_WEB_PORT", func(v string) { cfg.Web.Port = cast.ToInt(v) })
	setEnvValue("CAFETECA_WEB_SECRET", func(v string) { cfg.Web.Secret = v })
	setEnvValue("CAFETECA_WEB_PUBLIC_URL", func(v string) { cfg.Web.PublicURL = v })
	setEnvValue("CAFETECA_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvValue("CAFETECA_DB_PORT", func(v string) { cfg.Database.Port = cast.ToInt(v) })
	setEnvValue("CAFETECA_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("CAFETECA_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("CAFETECA_DB_PWD", func(v string) { cfg.Database.Passwd = v })
	setEnvValue("CAFETECA_DB_DEBUG", func(v string) { cfg.Database.Debug = cast.ToBool(v) })
	setEnvValue("CAFETECA_SMTP_HOST", func(v string) { cfg.Smtp.Host = v })
	setEnvValue("CAFETECA_SMTP_PORT", func(v string) { cfg.Smtp.Port = cast.ToInt(v) })
	setEnvValue("CAFETECA_SMTP_USERNAME", func(v string) { cfg.Smtp.Username = v })
	setEnvValue("CAFETECA_SMTP_PASSWORD", func(v string) { cfg.Smtp.Password = v })
	setEnvValue("CAFETECA_LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })

	return cfg
}

// InitDirs creates the workdir layout used by storage, metrics and logs.
func (c *AppConfig) InitDirs() {
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "storage"), 0o755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "data"), 0o755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "logs"), 0o755)
}
