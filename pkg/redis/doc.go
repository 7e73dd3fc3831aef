// Package redis connects to Redis and stores run reports in Redis lists.
//
// Connect retries PING until the server is ready:
//
//	client, err := redis.Connect(ctx, redis.Config{ConnectionURL: "redis://localhost:6379/0"})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// List appends serialized records to a single key:
//
//	list, _ := redis.NewList(client, "cookiemonster:results")
//	_, err = list.Append(ctx, record)
//
// Healthcheck wraps PING for liveness probes. All errors are sentinel values
// joined with the underlying go-redis error.
package redis
