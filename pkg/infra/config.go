// Package infra provisions the database-backup EC2 instance: the
// instance itself, its security group, and a least-privilege IAM role
// for reaching the backup bucket and the database password parameter.
package infra

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// allowedInstancePrefixes is the instance-type family allow-list. The
// prefix also selects the AMI architecture: t4g. is arm64, t3. is x86_64.
var allowedInstancePrefixes = []string{"t3.", "t4g."}

// Config is the declarative input for the backup instance, typically
// loaded from a YAML file.
type Config struct {
	Region            string `yaml:"region"`
	InstanceType      string `yaml:"instance_type"`
	BackupEnabled     bool   `yaml:"backup_enabled"`
	DatabaseName      string `yaml:"database_name"`
	ClusterID         string `yaml:"cluster_id"`
	PasswordParameter string `yaml:"password_parameter"`

	// Security group of the database the instance must reach
	DatabaseSecurityGroup string `yaml:"database_security_group"`

	// Optional additional security group attached to the instance
	ExtraSecurityGroup string `yaml:"extra_security_group,omitempty"`

	// Optional subnet; the account's default VPC is used when empty
	SubnetID string `yaml:"subnet_id,omitempty"`

	// Bucket holding the database backups; defaults to
	// "<cluster_id>-db-backups" when empty
	BackupBucket string `yaml:"backup_bucket,omitempty"`
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read infra config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse infra config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks all required inputs before any cloud call is made.
func (c *Config) Validate() error {
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}
	if c.InstanceType == "" {
		return fmt.Errorf("instance_type is required")
	}
	if !instanceTypeAllowed(c.InstanceType) {
		return fmt.Errorf("instance_type %q is not allowed: must start with one of %s",
			c.InstanceType, strings.Join(allowedInstancePrefixes, ", "))
	}
	if c.DatabaseName == "" {
		return fmt.Errorf("database_name is required")
	}
	if c.ClusterID == "" {
		return fmt.Errorf("cluster_id is required")
	}
	if c.PasswordParameter == "" {
		return fmt.Errorf("password_parameter is required")
	}
	if c.DatabaseSecurityGroup == "" {
		return fmt.Errorf("database_security_group is required")
	}
	return nil
}

// instanceTypeAllowed checks the type against the prefix allow-list.
func instanceTypeAllowed(instanceType string) bool {
	for _, prefix := range allowedInstancePrefixes {
		if strings.HasPrefix(instanceType, prefix) {
			return true
		}
	}
	return false
}

// Architecture returns the AMI architecture for the instance type.
func (c *Config) Architecture() string {
	if strings.HasPrefix(c.InstanceType, "t4g.") {
		return "arm64"
	}
	return "x86_64"
}

// Bucket returns the effective backup bucket name.
func (c *Config) Bucket() string {
	if c.BackupBucket != "" {
		return c.BackupBucket
	}
	return c.ClusterID + "-db-backups"
}
