package config

// Config 配置主体
type Config struct {
	Server               ServerConfig         `mapstructure:"server"`
	DB                   DBConfig             `mapstructure:"database"`
	Redis                RedisConfig          `mapstructure:"redis"`
	Logstash             LogstashConfig       `mapstructure:"logstash"`
	Kafka                KafkaConfig          `mapstructure:"kafka"`
	KafkaRawPostConsumer KafkaRawPostConsumer `mapstructure:"kafka_raw_post_consumer"`
	Pipeline             PipelineConfig       `mapstructure:"pipeline"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// LogstashConfig 日志上报配置
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// PipelineConfig 分析管道可调参数
type PipelineConfig struct {
	Cron              string   `mapstructure:"cron"`
	DecayRate         float64  `mapstructure:"decay_rate" validate:"gt=0"`
	ClusterCount      int      `mapstructure:"cluster_count" validate:"gt=0"`
	RandomSeed        int64    `mapstructure:"random_seed"`
	KeywordsPerPost   int      `mapstructure:"keywords_per_post" validate:"gt=0"`
	LookbackDays      int      `mapstructure:"lookback_days" validate:"gt=0"`
	PositiveThreshold float64  `mapstructure:"positive_threshold"`
	NegativeThreshold float64  `mapstructure:"negative_threshold"`
	ExtraStopwords    []string `mapstructure:"extra_stopwords"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaRawPostConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}
