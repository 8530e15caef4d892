package cache

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gomodule/redigo/redis"
)

// memoryConn understands the handful of commands the package issues.
type memoryConn struct {
	strings map[string]string
	hashes  map[string]map[string]string
	lists   map[string][]string
}

func newMemoryConn() *memoryConn {
	return &memoryConn{
		strings: map[string]string{},
		hashes:  map[string]map[string]string{},
		lists:   map[string][]string{},
	}
}

func (c *memoryConn) pool() *redis.Pool {
	return &redis.Pool{Dial: func() (redis.Conn, error) { return c, nil }}
}

func (c *memoryConn) Close() error { return nil }
func (c *memoryConn) Err() error   { return nil }
func (c *memoryConn) Flush() error { return nil }

func (c *memoryConn) Send(string, ...interface{}) error { return errors.New("pipelining not supported") }

func (c *memoryConn) Receive() (interface{}, error) { return nil, errors.New("pipelining not supported") }

func (c *memoryConn) Do(cmd string, args ...interface{}) (interface{}, error) {
	if cmd == "" {
		return nil, nil
	}
	a := make([]string, len(args))
	for i, arg := range args {
		a[i] = format(arg)
	}

	switch strings.ToUpper(cmd) {
	case "GET":
		v, ok := c.strings[a[0]]
		if !ok {
			return nil, nil
		}
		return []byte(v), nil
	case "SET":
		c.strings[a[0]] = a[1]
		return "OK", nil
	case "DEL":
		delete(c.strings, a[0])
		delete(c.hashes, a[0])
		delete(c.lists, a[0])
		return int64(1), nil
	case "HSET":
		h, ok := c.hashes[a[0]]
		if !ok {
			h = map[string]string{}
			c.hashes[a[0]] = h
		}
		for i := 1; i+1 < len(a); i += 2 {
			h[a[i]] = a[i+1]
		}
		return int64(len(a) / 2), nil
	case "HGET":
		v, ok := c.hashes[a[0]][a[1]]
		if !ok {
			return nil, nil
		}
		return []byte(v), nil
	case "HGETALL":
		var out []interface{}
		for k, v := range c.hashes[a[0]] {
			out = append(out, []byte(k), []byte(v))
		}
		return out, nil
	case "HDEL":
		delete(c.hashes[a[0]], a[1])
		return int64(1), nil
	case "RPUSH":
		c.lists[a[0]] = append(c.lists[a[0]], a[1:]...)
		return int64(len(c.lists[a[0]])), nil
	case "LRANGE":
		var out []interface{}
		for _, v := range c.lists[a[0]] {
			out = append(out, []byte(v))
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported command %s", cmd)
}

func format(arg interface{}) string {
	switch v := arg.(type) {
	case bool:
		if v {
			return "1"
		}
		return "0"
	case []byte:
		return string(v)
	}
	return fmt.Sprint(arg)
}
