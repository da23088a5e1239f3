package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	DemoData bool   `yaml:"demo_data" json:"demo_data"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
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

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

// AuthConfig points at the hosted auth provider used for user registration
type AuthConfig struct {
	Url    string `yaml:"url" json:"url"`
	Apikey string `yaml:"apikey" json:"apikey"`
}

type AppConfig struct {
	System   SysConfig    `yaml:"system" json:"system"`
	Web      WebConfig    `yaml:"web" json:"web"`
	Database DBConfig     `yaml:"database" json:"database"`
	Logger   LoggerConfig `yaml:"logger" json:"logger"`
	Auth     AuthConfig   `yaml:"auth" json:"auth"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "fluke",
		Location: "Asia/Shanghai",
		Workdir:  "/var/fluke",
		DemoData: false,
		Debug:    true,
	},
	Web: WebConfig{
		Host: "0.0.0.0",
		Port: 1816,
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "fluke",
		User:     "postgres",
		Passwd:   "fluke",
		MaxConn:  100,
		IdleConn: 10,
		Debug:    false,
	},
	Logger: LoggerConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/fluke/fluke.log",
	},
	Auth: AuthConfig{
		Url:    "http://127.0.0.1:9999",
		Apikey: "",
	},
}

func setEnvValue(name string, f func(v string)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue)
	}
}

func setEnvBoolValue(name string, f func(v bool)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue == "true" || evalue == "1" || evalue == "on")
	}
}

func setEnvIntValue(name string, f func(v int)) {
	var evalue = os.Getenv(name)
	if evalue == "" {
		return
	}
	p, err := strconv.Atoi(evalue)
	if err == nil {
		f(p)
	}
}

// LoadConfig loads the application configuration from a YAML file if it
// exists, falling back to defaults, then applies environment overrides.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" && FileExists(cfile) {
		data, err := os.ReadFile(cfile)
		if err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvValue("FLUKE_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvBoolValue("FLUKE_SYSTEM_DEBUG", func(v bool) { cfg.System.Debug = v })
	setEnvBoolValue("FLUKE_SYSTEM_DEMO_DATA", func(v bool) { cfg.System.DemoData = v })

	setEnvValue("FLUKE_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvIntValue("FLUKE_WEB_PORT", func(v int) { cfg.Web.Port = v })

	setEnvValue("FLUKE_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvIntValue("FLUKE_DB_PORT", func(v int) { cfg.Database.Port = v })
	setEnvValue("FLUKE_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("FLUKE_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("FLUKE_DB_PWD", func(v string) { cfg.Database.Passwd = v })
	setEnvBoolValue("FLUKE_DB_DEBUG", func(v bool) { cfg.Database.Debug = v })

	setEnvValue("FLUKE_LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })
	setEnvBoolValue("FLUKE_LOGGER_FILE_ENABLE", func(v bool) { cfg.Logger.FileEnable = v })

	setEnvValue("FLUKE_AUTH_URL", func(v string) { cfg.Auth.Url = v })
	setEnvValue("FLUKE_AUTH_APIKEY", func(v string) { cfg.Auth.Apikey = v })

	return cfg
}

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
