package infra

import (
	"encoding/json"
	"fmt"
)

const (
	iamPolicyVersion    = "2012-10-17"
	iamEffectAllow      = "Allow"
	awsServiceEC2       = "ec2.amazonaws.com"
	stsActionAssumeRole = "sts:AssumeRole"

	// ssmManagedPolicyArn enables the SSM agent on the instance.
	ssmManagedPolicyArn = "arn:aws:iam::aws:policy/AmazonSSMManagedInstanceCore"
)

// trustPolicyDocument returns the EC2 service trust policy.
func trustPolicyDocument() (string, error) {
	doc := map[string]any{
		"Version": iamPolicyVersion,
		"Statement": []map[string]any{
			{
				"Effect": iamEffectAllow,
				"Principal": map[string]any{
					"Service": awsServiceEC2,
				},
				"Action": stsActionAssumeRole,
			},
		},
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal trust policy: %w", err)
	}
	return string(data), nil
}

// backupPolicyDocument returns the least-privilege inline policy: read
// the one backup bucket and the one database password parameter,
// nothing else.
func backupPolicyDocument(cfg *Config) (string, error) {
	doc := map[string]any{
		"Version": iamPolicyVersion,
		"Statement": []map[string]any{
			{
				"Sid":    "ReadBackupBucket",
				"Effect": iamEffectAllow,
				"Action": []string{"s3:GetObject"},
				"Resource": []string{
					fmt.Sprintf("arn:aws:s3:::%s/*", cfg.Bucket()),
				},
			},
			{
				"Sid":    "ListBackupBucket",
				"Effect": iamEffectAllow,
				"Action": []string{"s3:ListBucket"},
				"Resource": []string{
					fmt.Sprintf("arn:aws:s3:::%s", cfg.Bucket()),
				},
			},
			{
				"Sid":    "ReadPasswordParameter",
				"Effect": iamEffectAllow,
				"Action": []string{"ssm:GetParameter"},
				"Resource": []string{
					fmt.Sprintf("arn:aws:ssm:%s:*:parameter%s", cfg.Region, normalizeParameterPath(cfg.PasswordParameter)),
				},
			},
		},
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal backup policy: %w", err)
	}
	return string(data), nil
}

// normalizeParameterPath ensures the parameter name carries a leading
// slash as required in the ARN form.
func normalizeParameterPath(name string) string {
	if len(name) > 0 && name[0] == '/' {
		return name
	}
	return "/" + name
}
