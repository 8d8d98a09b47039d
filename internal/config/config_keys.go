// config_keys.go provides key-value access to configuration settings.
//
// The CLI and MCP server address settings by dotted key
// ("limits.max_content"); config.go owns the YAML structure. Optional fields
// are pointers so "not set" and "set to zero" stay distinct and defaults
// apply only to the former.

package config

import (
	"fmt"
	"slices"
	"strconv"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"author.name", "author.email",
		"limits.max_content", "limits.max_posts",
		"gate.sameness_threshold",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "author.email":
		return c.Author.Email, nil
	case "limits.max_content":
		return strconv.FormatInt(c.MaxContent(), 10), nil
	case "limits.max_posts":
		return strconv.Itoa(c.MaxPosts()), nil
	case "gate.sameness_threshold":
		return formatFloat(c.SamenessThreshold()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key. Numeric values are
// bounds-checked against the same limits Validate applies on load.
func (c *Config) Set(key, value string) error {
	switch key {
	case "author.name":
		c.Author.Name = value
	case "author.email":
		c.Author.Email = value
	case "limits.max_content":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n < MinMaxContent || n > MaxMaxContent {
			return fmt.Errorf("%w: limits.max_content must be an integer between %d and %d",
				ErrInvalidValue, MinMaxContent, MaxMaxContent)
		}
		c.Limits.MaxContent = &n
	case "limits.max_posts":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinMaxPosts || n > MaxMaxPosts {
			return fmt.Errorf("%w: limits.max_posts must be an integer between %d and %d",
				ErrInvalidValue, MinMaxPosts, MaxMaxPosts)
		}
		c.Limits.MaxPosts = &n
	case "gate.sameness_threshold":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 || f > 1 {
			return fmt.Errorf("%w: gate.sameness_threshold must be a number in (0, 1]", ErrInvalidValue)
		}
		c.Gate.SamenessThreshold = &f
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	return map[string]string{
		"author.name":             c.Author.Name,
		"author.email":            c.Author.Email,
		"limits.max_content":      strconv.FormatInt(c.MaxContent(), 10),
		"limits.max_posts":        strconv.Itoa(c.MaxPosts()),
		"gate.sameness_threshold": formatFloat(c.SamenessThreshold()),
	}
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "author.email":
		return c.Author.Email != ""
	case "limits.max_content":
		return c.Limits.MaxContent != nil
	case "limits.max_posts":
		return c.Limits.MaxPosts != nil
	case "gate.sameness_threshold":
		return c.Gate.SamenessThreshold != nil
	default:
		return false
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
