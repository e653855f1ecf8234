package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	JWT     JWTConfig
	LiveKit LiveKitConfig
}

type ServerConfig struct {
	Address string
}

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     int
}

type JWTConfig struct {
	Secret string
}

// LiveKitConfig 是會議後端的簽發密鑰與連線位址
type LiveKitConfig struct {
	APIKey    string
	APISecret string
	URL       string
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./pkg/config")

	viper.SetDefault("server.address", ":3001")
	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", 5432)

	if err := viper.ReadInConfig(); err != nil {
		// 找不到配置文件時退回預設值與環境變量
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
