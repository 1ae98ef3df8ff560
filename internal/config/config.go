package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/rotation"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Database struct {
		DSN                string `env:"DSN,required"`
		ConnectTimeout     int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout       int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		TransactionTimeout int    `env:"TRANSACTION_TIMEOUT" envDefault:"20"`
		MaxOpenConns       int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns       int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime        int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	InitialAdmin struct {
		Username string `env:"USERNAME" envDefault:"admin"`
		Password string `env:"PASSWORD,required"`
		FullName string `env:"FULL_NAME" envDefault:"管理员"`
		Email    string `env:"EMAIL,required"`
	} `envPrefix:"INITIAL_ADMIN_"`
	JWT struct {
		Expiration int    `env:"EXPIRATION" envDefault:"336"` // 14 天，单位为小时
		Secret     string `env:"SECRET,required"`
	} `envPrefix:"JWT_"`
	Seed struct {
		Employee struct {
			Password string `env:"PASSWORD,required"`
		} `envPrefix:"EMPLOYEE_"`
		CSVPath string `env:"CSV_PATH" envDefault:"./internal/seed/data/employees.csv"`
	} `envPrefix:"SEED_"`
	Email struct {
		UserDomain string `env:"USER_DOMAIN,required"`
		SMTP       struct {
			Username    string `env:"USERNAME,required"`
			Password    string `env:"PASSWORD,required"`
			Host        string `env:"HOST,required"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
		TemplateDir string `env:"TEMPLATE_DIR" envDefault:"./templates"`
	} `envPrefix:"EMAIL_"`
	RabbitMQ struct {
		DSN            string `env:"DSN,required"`
		Queue          string `env:"QUEUE" envDefault:"email_queue"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Redis struct {
		Host                string `env:"HOST" envDefault:"localhost"`
		Port                int    `env:"PORT" envDefault:"6379"`
		Password            string `env:"PASSWORD,required"`
		ConnectTimeout      int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		OperationExpiration int    `env:"OPERATION_EXPIRATION" envDefault:"10"`
	} `envPrefix:"REDIS_"`
	OTP struct {
		Expiration int `env:"EXPIRATION" envDefault:"900"` // 15 分钟，单位为秒
	} `envPrefix:"OTP_"`
	NewEmployee struct {
		PasswordLength int `env:"PASSWORD_LENGTH" envDefault:"12"`
	} `envPrefix:"NEW_EMPLOYEE_"`
	Rotation struct {
		// 第 1 周的锚点，生产环境应使用哪个锚点需要和业务方确认
		EpochAnchor  string   `env:"EPOCH_ANCHOR" envDefault:"2025-09-08"`
		TimeZone     string   `env:"TIME_ZONE" envDefault:"Asia/Seoul"`
		BoundaryHour int      `env:"BOUNDARY_HOUR" envDefault:"6"`
		Team1Cycle   []string `env:"TEAM1_CYCLE" envSeparator:"," envDefault:"초야,주간,심야"`
		Team2Cycle   []string `env:"TEAM2_CYCLE" envSeparator:"," envDefault:"심야,초야,주간"`
		Team3Cycle   []string `env:"TEAM3_CYCLE" envSeparator:"," envDefault:"주간,심야,초야"`
		MaxRangeDays int      `env:"MAX_RANGE_DAYS" envDefault:"62"`
	} `envPrefix:"ROTATION_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok && len(aggErr.Errors) > 0 {
			// 只返回第一个错误使得日志更清晰
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	return cfg, nil
}

var anchorLayouts = []string{
	time.DateOnly,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// CalendarConfig 将 ROTATION_ 相关的配置转换为 rotation.Config
// 只给出日期的锚点使用分界时刻作为时间
func (c *Config) CalendarConfig() (rotation.Config, error) {
	loc, err := time.LoadLocation(c.Rotation.TimeZone)
	if err != nil {
		return rotation.Config{}, fmt.Errorf("无法加载时区 %s: %w", c.Rotation.TimeZone, err)
	}

	var anchor time.Time
	for i, layout := range anchorLayouts {
		anchor, err = time.ParseInLocation(layout, c.Rotation.EpochAnchor, loc)
		if err == nil {
			if i == 0 {
				anchor = time.Date(anchor.Year(), anchor.Month(), anchor.Day(), c.Rotation.BoundaryHour, 0, 0, 0, loc)
			}
			break
		}
	}
	if err != nil {
		return rotation.Config{}, fmt.Errorf("无法解析纪元锚点 %s: %w", c.Rotation.EpochAnchor, err)
	}

	cycles := make(map[rotation.Team][3]rotation.ShiftLabel, len(rotation.Teams))
	for team, labels := range map[rotation.Team][]string{
		rotation.Team1: c.Rotation.Team1Cycle,
		rotation.Team2: c.Rotation.Team2Cycle,
		rotation.Team3: c.Rotation.Team3Cycle,
	} {
		if len(labels) != 3 {
			return rotation.Config{}, fmt.Errorf("团队 %d 的班次循环必须恰好包含 3 个班次", team)
		}
		cycles[team] = [3]rotation.ShiftLabel{
			rotation.ShiftLabel(labels[0]),
			rotation.ShiftLabel(labels[1]),
			rotation.ShiftLabel(labels[2]),
		}
	}

	return rotation.Config{
		EpochAnchor:  anchor,
		Location:     loc,
		BoundaryHour: c.Rotation.BoundaryHour,
		Cycles:       cycles,
	}, nil
}
