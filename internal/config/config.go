package config

import "github.com/spf13/viper"

type Config struct {
	App struct {
		Env      string
		Timezone string
	} `mapstructure:"app"`

	Telegram struct {
		Token         string
		UpdateTimeout int `mapstructure:"update_timeout"`
	} `mapstructure:"telegram"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Wildberries struct {
		StatisticsURL string `mapstructure:"statistics_url"`
	} `mapstructure:"wildberries"`

	Registry struct {
		Path string
	} `mapstructure:"registry"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`
}

func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	// Переопределение через ENV (APP_*)
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	v.SetDefault("app.timezone", "Europe/Moscow")
	v.SetDefault("telegram.update_timeout", 30)
	v.SetDefault("wildberries.statistics_url", "https://statistics-api.wildberries.ru")
	v.SetDefault("registry.path", "shops.json")

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}
