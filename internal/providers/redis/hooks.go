package redis

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const slowCommand = 50 * time.Millisecond

// commandLogger is a go-redis hook that logs dials and commands. Cache misses
// (redis.Nil) are not failures.
type commandLogger struct {
	logger *zap.SugaredLogger
}

func (h *commandLogger) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		if err != nil {
			h.logger.Errorw("Redis dial failed", "addr", addr, "error", err)
		}
		return conn, err
	}
}

func (h *commandLogger) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		h.log(time.Since(start), err, cmd.Name())
		return err
	}
}

func (h *commandLogger) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)

		names := make([]string, len(cmds))
		for i, cmd := range cmds {
			names[i] = cmd.Name()
		}
		h.log(time.Since(start), err, names...)
		return err
	}
}

func (h *commandLogger) log(elapsed time.Duration, err error, commands ...string) {
	switch {
	case err != nil && !errors.Is(err, redis.Nil):
		h.logger.Errorw("Redis command failed", "commands", commands, "elapsed", elapsed, "error", err)
	case elapsed > slowCommand:
		h.logger.Warnw("Slow Redis command", "commands", commands, "elapsed", elapsed)
	case len(commands) == 1 && commands[0] == "ping":
	default:
		h.logger.Debugw("Redis command executed", "commands", commands, "elapsed", elapsed)
	}
}
