// Package redis holds the Redis-backed session store and the client hooks that
// add metrics and circuit breaking to every command.
package redis
