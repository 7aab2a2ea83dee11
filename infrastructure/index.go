package infrastructure

import (
	"context"
	"os/signal"
	"syscall"

	messagequeue "atmsecurity.io/infrastructure/message_queue"
	startup "atmsecurity.io/infrastructure/startUp"
	"golang.org/x/sync/errgroup"
)

// StartServer runs the http server and the task queue workers until the
// process is interrupted or either of them fails.
func StartServer() error {
	if err := startup.StartServices(); err != nil {
		return err
	}
	defer startup.CleanUpServices()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var server serverInterface = &ginServer{}
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return messagequeue.StartQueue(groupCtx)
	})
	group.Go(func() error {
		return server.Start(groupCtx)
	})
	return group.Wait()
}
