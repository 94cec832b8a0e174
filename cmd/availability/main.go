package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/r-kabir-rafi/bracu-socials/config"
	"github.com/r-kabir-rafi/bracu-socials/internal/dto"
	"github.com/r-kabir-rafi/bracu-socials/internal/repository"
	"github.com/r-kabir-rafi/bracu-socials/internal/service"
	"github.com/r-kabir-rafi/bracu-socials/pkg/database"
	applogger "github.com/r-kabir-rafi/bracu-socials/pkg/logger"
	"github.com/r-kabir-rafi/bracu-socials/pkg/redis"
)

func main() {
	// .env 不存在时忽略
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "availability",
		Usage: "校园可用状态与空闲时间查询",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "配置文件路径（默认 ./config/config.yaml）", EnvVars: []string{"BRACU_CONFIG"}},
		},
		Commands: []*cli.Command{
			migrateCommand(),
			statusCommand(),
			freeTimeCommand(),
			commonFreeTimeCommand(),
			setStatusCommand(),
			clearStatusCommand(),
			invalidateCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "执行失败: %v\n", err)
		os.Exit(1)
	}
}

// ── 依赖装配 ──

type deps struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	rdb    *redis.Client
	svc    *service.Service
}

// bootstrap 加载配置并完成 Repository → Service 的依赖注入
func bootstrap(c *cli.Context) (*deps, error) {
	// 1. 加载配置
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("初始化日志失败: %w", err)
	}

	// 3. 连接数据库
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}

	rt := &deps{cfg: cfg, logger: logger, db: db}

	// 4. 连接 Redis（可选：连接失败时降级为直接读库）
	repo := repository.NewRepository(db)
	if cfg.Redis.Enabled {
		rdb, err := redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis 连接失败，课表快照缓存不可用", zap.Error(err))
		} else {
			rt.rdb = rdb
			repo = repo.WithSnapshotCache(rdb, cfg.Redis.SnapshotTTL, logger)
		}
	}

	// 5. 依赖注入: Repository → Service
	svc, err := service.NewService(cfg, repo, service.SystemClock{}, logger)
	if err != nil {
		rt.close()
		return nil, err
	}
	rt.svc = svc
	return rt, nil
}

func (rt *deps) close() {
	if sqlDB, _ := rt.db.DB(); sqlDB != nil {
		sqlDB.Close()
	}
	if rt.rdb != nil {
		rt.rdb.Close()
	}
	_ = rt.logger.Sync()
}

// withRuntime 为子命令装配依赖并在结束后释放
func withRuntime(fn func(c *cli.Context, rt *deps) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		rt, err := bootstrap(c)
		if err != nil {
			return err
		}
		defer rt.close()
		return fn(c, rt)
	}
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ── 子命令 ──

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "执行数据库迁移",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "down", Usage: "回滚 N 个版本"},
		},
		Action: withRuntime(func(c *cli.Context, rt *deps) error {
			sqlDB, err := rt.db.DB()
			if err != nil {
				return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
			}
			if steps := c.Int("down"); steps > 0 {
				return database.RollbackMigrations(sqlDB, steps, rt.logger)
			}
			return database.RunMigrations(sqlDB, rt.logger)
		}),
	}
}

func userFlag() cli.Flag {
	return &cli.StringFlag{Name: "user", Aliases: []string{"u"}, Usage: "用户ID (UUID)", Required: true}
}

func dayFlag() cli.Flag {
	return &cli.StringFlag{Name: "day", Aliases: []string{"d"}, Usage: "星期（如 Mon、Tuesday），默认今天"}
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "查询用户当前可用状态",
		Flags: []cli.Flag{userFlag()},
		Action: withRuntime(func(c *cli.Context, rt *deps) error {
			resp, err := rt.svc.Availability.GetStatus(c.Context, c.String("user"))
			if err != nil {
				return err
			}
			return printJSON(resp)
		}),
	}
}

func freeTimeCommand() *cli.Command {
	return &cli.Command{
		Name:  "free-time",
		Usage: "查询用户某天的空闲时间",
		Flags: []cli.Flag{userFlag(), dayFlag()},
		Action: withRuntime(func(c *cli.Context, rt *deps) error {
			resp, err := rt.svc.Availability.GetFreeTime(c.Context, c.String("user"), c.String("day"))
			if err != nil {
				return err
			}
			return printJSON(resp)
		}),
	}
}

func commonFreeTimeCommand() *cli.Command {
	return &cli.Command{
		Name:  "common-free-time",
		Usage: "查询多位用户某天的共同空闲时间",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "user", Aliases: []string{"u"}, Usage: "用户ID，可重复指定", Required: true},
			dayFlag(),
		},
		Action: withRuntime(func(c *cli.Context, rt *deps) error {
			resp, err := rt.svc.Availability.FindCommonFreeTime(c.Context, c.StringSlice("user"), c.String("day"))
			if err != nil {
				return err
			}
			return printJSON(resp)
		}),
	}
}

func setStatusCommand() *cli.Command {
	return &cli.Command{
		Name:  "set-status",
		Usage: "手动设置状态覆盖（free | busy）",
		Flags: []cli.Flag{
			userFlag(),
			&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "free | busy", Required: true},
			&cli.IntFlag{Name: "duration", Usage: "持续分钟数，不指定则不自动过期"},
		},
		Action: withRuntime(func(c *cli.Context, rt *deps) error {
			req := &dto.SetStatusRequest{Status: c.String("status")}
			if c.IsSet("duration") {
				minutes := c.Int("duration")
				req.DurationMinutes = &minutes
			}
			resp, err := rt.svc.Availability.SetStatus(c.Context, c.String("user"), req)
			if err != nil {
				return err
			}
			return printJSON(resp)
		}),
	}
}

func clearStatusCommand() *cli.Command {
	return &cli.Command{
		Name:  "clear-status",
		Usage: "清除手动状态覆盖",
		Flags: []cli.Flag{userFlag()},
		Action: withRuntime(func(c *cli.Context, rt *deps) error {
			return rt.svc.Availability.ClearStatusOverride(c.Context, c.String("user"))
		}),
	}
}

func invalidateCommand() *cli.Command {
	return &cli.Command{
		Name:  "invalidate-snapshot",
		Usage: "删除用户的课表快照缓存（课表变更后调用）",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "user", Aliases: []string{"u"}, Usage: "用户ID，可重复指定", Required: true},
		},
		Action: withRuntime(func(c *cli.Context, rt *deps) error {
			if rt.rdb == nil {
				rt.logger.Info("未启用 Redis，无需清理快照缓存")
				return nil
			}
			users := c.StringSlice("user")
			if err := repository.InvalidateSnapshot(c.Context, rt.rdb, users...); err != nil {
				return fmt.Errorf("清理快照缓存失败: %w", err)
			}
			rt.logger.Info("课表快照缓存已清理", zap.Strings("users", users))
			return nil
		}),
	}
}
