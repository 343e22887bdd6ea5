package config

import (
	"github.com/blues/cls/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Chain     ChainConfig     `mapstructure:"chain"`
	Ledger    LedgerConfig    `mapstructure:"ledger"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// ChainConfig 链上所有权查询配置
type ChainConfig struct {
	Enabled      bool   `mapstructure:"enabled"`       // 是否启用链上查询
	RpcUrl       string `mapstructure:"rpc_url"`       // RPC节点URL
	ContractAddr string `mapstructure:"contract_addr"` // NFT合约地址
	QueryTimeout int    `mapstructure:"query_timeout"` // 单次所有权查询超时（秒）
	PoolSize     int    `mapstructure:"pool_size"`     // 批量查询协程池大小
}

// LedgerConfig 贡献账本规则配置
type LedgerConfig struct {
	PriceFloor      string `mapstructure:"price_floor"`      // 最低定价
	ContributionCap int    `mapstructure:"contribution_cap"` // 单用户单活动贡献上限
	MaxRetries      int    `mapstructure:"max_retries"`      // 写冲突重试次数
}

// AuthConfig 身份提供方签发的JWT配置
type AuthConfig struct {
	JwtSecret string `mapstructure:"jwt_secret"`
}

type SchedulerConfig struct {
	Interval int `mapstructure:"interval"` // 秒
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, stderr, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/cls")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "campaign_ledger")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("chain.enabled", false)
	viper.SetDefault("chain.query_timeout", 5)
	viper.SetDefault("chain.pool_size", 8)
	viper.SetDefault("ledger.price_floor", "0.001")
	viper.SetDefault("ledger.contribution_cap", 5)
	viper.SetDefault("ledger.max_retries", 3)
	viper.SetDefault("auth.jwt_secret", "")
	viper.SetDefault("scheduler.interval", 60)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
