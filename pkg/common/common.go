package common

import (
	"crypto/sha256"
	"fmt"
	"os"
	"sync"

	"github.com/bwmarrin/snowflake"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var (
	snowflakeNode *snowflake.Node
	snowflakeOnce sync.Once
)

// UUIDint64 generates a cluster-unique int64 id
func UUIDint64() int64 {
	snowflakeOnce.Do(func() {
		var err error
		snowflakeNode, err = snowflake.NewNode(1)
		if err != nil {
			panic(err)
		}
	})
	return snowflakeNode.Generate().Int64()
}

// UUID generates a cluster-unique string id
func UUID() string {
	snowflakeOnce.Do(func() {
		var err error
		snowflakeNode, err = snowflake.NewNode(1)
		if err != nil {
			panic(err)
		}
	})
	return snowflakeNode.Generate().String()
}

// GetSecretSalt returns the process-wide secret salt, overridable by environment
func GetSecretSalt() string {
	if salt := os.Getenv("FLUKE_SECRET_SALT"); salt != "" {
		return salt
	}
	return "fluke-secret"
}

// Sha256HashWithSalt hashes value with the given salt
func Sha256HashWithSalt(value string, salt string) string {
	h := sha256.New()
	h.Write([]byte(value + salt))
	return fmt.Sprintf("%x", h.Sum(nil))
}
