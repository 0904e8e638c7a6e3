package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg。
// 管道参数非法会直接失败：错误的 decay_rate / cluster_count 会污染整轮输出。
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	setPipelineDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file not found: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Pipeline.NegativeThreshold >= cfg.Pipeline.PositiveThreshold {
		return fmt.Errorf("invalid config: negative_threshold must be below positive_threshold")
	}

	Cfg = &cfg

	return nil
}

func setPipelineDefaults() {
	viper.SetDefault("pipeline.cron", "0 0 */6 * * *")
	viper.SetDefault("pipeline.decay_rate", 0.1)
	viper.SetDefault("pipeline.cluster_count", 8)
	viper.SetDefault("pipeline.random_seed", 42)
	viper.SetDefault("pipeline.keywords_per_post", 10)
	viper.SetDefault("pipeline.lookback_days", 7)
	viper.SetDefault("pipeline.positive_threshold", 0.1)
	viper.SetDefault("pipeline.negative_threshold", -0.1)
}
