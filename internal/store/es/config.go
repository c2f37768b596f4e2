package es

import (
	"os"
	"strings"
)

const defaultIndexName = "published-articles"

// LoadConfigFromEnv returns nil when no addresses are configured; search
// indexing is optional.
func LoadConfigFromEnv() *ClientConfig {
	addresses := os.Getenv("ES_ADDRESSES")
	if addresses == "" {
		return nil
	}

	indexName := os.Getenv("ES_INDEX_NAME")
	if indexName == "" {
		indexName = defaultIndexName
	}

	return &ClientConfig{
		Addresses: strings.Split(addresses, ","),
		IndexName: indexName,
		Username:  os.Getenv("ES_USERNAME"),
		Password:  os.Getenv("ES_PASSWORD"),
	}
}
