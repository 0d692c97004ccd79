package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ringstack/deploy/pkg/logging"
)

// amiParameterPrefix is the SSM public parameter for the latest Amazon
// Linux 2023 AMI; the architecture suffix is appended per instance type.
const amiParameterPrefix = "/aws/service/ami-amazon-linux-latest/al2023-ami-kernel-default-"

// iamPropagationDelay gives freshly created IAM resources time to
// propagate before RunInstances references the instance profile.
const iamPropagationDelay = 10 * time.Second

// Result describes everything the provisioner created.
type Result struct {
	InstanceID        string
	AMI               string
	SecurityGroupID   string
	RoleName          string
	InstanceProfile   string
	AttachedGroups    []string
	BackupBucket      string
	PasswordParameter string
}

// Provisioner creates the backup instance and its IAM surface.
type Provisioner struct {
	cfg    *Config
	ec2    *ec2.Client
	iam    *iam.Client
	ssm    *ssm.Client
	logger *logging.ColoredLogger
}

// NewProvisioner resolves AWS credentials from the default chain for
// the configured region.
func NewProvisioner(ctx context.Context, cfg *Config, logger *logging.ColoredLogger) (*Provisioner, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &Provisioner{
		cfg:    cfg,
		ec2:    ec2.NewFromConfig(awsCfg),
		iam:    iam.NewFromConfig(awsCfg),
		ssm:    ssm.NewFromConfig(awsCfg),
		logger: logger,
	}, nil
}

// Provision creates all resources and starts the instance. Resource
// names carry a short unique suffix so repeated runs don't collide.
func (p *Provisioner) Provision(ctx context.Context) (*Result, error) {
	suffix := uuid.NewString()[:8]
	name := fmt.Sprintf("%s-backup-%s", p.cfg.ClusterID, suffix)

	ami, err := p.lookupAMI(ctx)
	if err != nil {
		return nil, err
	}
	p.logger.ComponentInfo(logging.ComponentInfra, "resolved AMI",
		zap.String("ami", ami), zap.String("arch", p.cfg.Architecture()))

	sgID, err := p.createSecurityGroup(ctx, name)
	if err != nil {
		return nil, err
	}

	roleName, profileName, err := p.createRole(ctx, name)
	if err != nil {
		return nil, err
	}

	// IAM is eventually consistent; RunInstances rejects a profile it
	// cannot see yet.
	select {
	case <-time.After(iamPropagationDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	groups := []string{sgID, p.cfg.DatabaseSecurityGroup}
	if p.cfg.ExtraSecurityGroup != "" {
		groups = append(groups, p.cfg.ExtraSecurityGroup)
	}

	instanceID, err := p.runInstance(ctx, name, ami, profileName, groups)
	if err != nil {
		return nil, err
	}

	return &Result{
		InstanceID:        instanceID,
		AMI:               ami,
		SecurityGroupID:   sgID,
		RoleName:          roleName,
		InstanceProfile:   profileName,
		AttachedGroups:    groups,
		BackupBucket:      p.cfg.Bucket(),
		PasswordParameter: p.cfg.PasswordParameter,
	}, nil
}

// lookupAMI resolves the architecture-appropriate AMI via the SSM
// public parameter.
func (p *Provisioner) lookupAMI(ctx context.Context) (string, error) {
	paramName := amiParameterPrefix + p.cfg.Architecture()
	out, err := p.ssm.GetParameter(ctx, &ssm.GetParameterInput{
		Name: aws.String(paramName),
	})
	if err != nil {
		return "", fmt.Errorf("failed to resolve AMI parameter %s: %w", paramName, err)
	}
	return aws.ToString(out.Parameter.Value), nil
}

// createSecurityGroup creates the instance's own security group. AWS
// attaches an allow-all egress rule to new groups; no ingress is added
// here, the instance inherits reachability through the database group.
func (p *Provisioner) createSecurityGroup(ctx context.Context, name string) (string, error) {
	p.logger.ComponentInfo(logging.ComponentInfra, "creating security group", zap.String("name", name))

	out, err := p.ec2.CreateSecurityGroup(ctx, &ec2.CreateSecurityGroupInput{
		GroupName:   aws.String(name),
		Description: aws.String("RingStack database backup instance"),
		TagSpecifications: []ec2types.TagSpecification{
			{
				ResourceType: ec2types.ResourceTypeSecurityGroup,
				Tags:         p.tags(name),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create security group: %w", err)
	}

	return aws.ToString(out.GroupId), nil
}

// createRole creates the IAM role, its inline least-privilege policy,
// the managed SSM policy attachment, and the instance profile.
func (p *Provisioner) createRole(ctx context.Context, name string) (roleName, profileName string, err error) {
	trust, err := trustPolicyDocument()
	if err != nil {
		return "", "", err
	}

	p.logger.ComponentInfo(logging.ComponentInfra, "creating IAM role", zap.String("role", name))
	_, err = p.iam.CreateRole(ctx, &iam.CreateRoleInput{
		RoleName:                 aws.String(name),
		AssumeRolePolicyDocument: aws.String(trust),
		Description:              aws.String("RingStack backup instance role"),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to create IAM role: %w", err)
	}

	inline, err := backupPolicyDocument(p.cfg)
	if err != nil {
		return "", "", err
	}
	_, err = p.iam.PutRolePolicy(ctx, &iam.PutRolePolicyInput{
		RoleName:       aws.String(name),
		PolicyName:     aws.String(name + "-backup-access"),
		PolicyDocument: aws.String(inline),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to attach inline policy: %w", err)
	}

	_, err = p.iam.AttachRolePolicy(ctx, &iam.AttachRolePolicyInput{
		RoleName:  aws.String(name),
		PolicyArn: aws.String(ssmManagedPolicyArn),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to attach SSM managed policy: %w", err)
	}

	_, err = p.iam.CreateInstanceProfile(ctx, &iam.CreateInstanceProfileInput{
		InstanceProfileName: aws.String(name),
		Tags: []iamtypes.Tag{
			{Key: aws.String("Name"), Value: aws.String(name)},
		},
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to create instance profile: %w", err)
	}

	_, err = p.iam.AddRoleToInstanceProfile(ctx, &iam.AddRoleToInstanceProfileInput{
		InstanceProfileName: aws.String(name),
		RoleName:            aws.String(name),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to add role to instance profile: %w", err)
	}

	return name, name, nil
}

// runInstance launches the instance and waits until it is running.
func (p *Provisioner) runInstance(ctx context.Context, name, ami, profileName string, groups []string) (string, error) {
	userData, err := renderUserData(p.cfg)
	if err != nil {
		return "", err
	}

	input := &ec2.RunInstancesInput{
		ImageId:          aws.String(ami),
		InstanceType:     ec2types.InstanceType(p.cfg.InstanceType),
		MinCount:         aws.Int32(1),
		MaxCount:         aws.Int32(1),
		SecurityGroupIds: groups,
		UserData:         aws.String(userData),
		IamInstanceProfile: &ec2types.IamInstanceProfileSpecification{
			Name: aws.String(profileName),
		},
		TagSpecifications: []ec2types.TagSpecification{
			{
				ResourceType: ec2types.ResourceTypeInstance,
				Tags:         p.tags(name),
			},
		},
	}
	if p.cfg.SubnetID != "" {
		input.SubnetId = aws.String(p.cfg.SubnetID)
	}

	p.logger.ComponentInfo(logging.ComponentInfra, "launching instance",
		zap.String("name", name), zap.String("type", p.cfg.InstanceType))

	out, err := p.ec2.RunInstances(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to launch instance: %w", err)
	}
	instanceID := aws.ToString(out.Instances[0].InstanceId)

	waiter := ec2.NewInstanceRunningWaiter(p.ec2)
	err = waiter.Wait(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{instanceID},
	}, 5*time.Minute)
	if err != nil {
		return instanceID, fmt.Errorf("instance %s did not reach running state: %w", instanceID, err)
	}

	p.logger.ComponentInfo(logging.ComponentInfra, "instance running", zap.String("instance_id", instanceID))
	return instanceID, nil
}

// tags returns the standard tag set for created resources.
func (p *Provisioner) tags(name string) []ec2types.Tag {
	return []ec2types.Tag{
		{Key: aws.String("Name"), Value: aws.String(name)},
		{Key: aws.String("ringstack:cluster"), Value: aws.String(p.cfg.ClusterID)},
		{Key: aws.String("ringstack:role"), Value: aws.String("db-backup")},
	}
}
