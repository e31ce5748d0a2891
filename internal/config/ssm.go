package config

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ssmFetcher is the part of the SSM client the config loader needs.
type ssmFetcher interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// lazySSM defers loading AWS credentials until a parameter is actually requested.
type lazySSM struct {
	region string
}

func newSSMFetcher(region string) ssmFetcher {
	return lazySSM{region: region}
}

func (l lazySSM) GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if l.region != "" {
		opts = append(opts, awsconfig.WithRegion(l.region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return ssm.NewFromConfig(cfg).GetParameter(ctx, params, optFns...)
}

// parseSSM reads a YAML document from an SSM parameter.
func parseSSM(ctx context.Context, client ssmFetcher, name string) (*StructuredConfig, error) {
	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get parameter %s: %w", name, err)
	}

	if out.Parameter == nil || out.Parameter.Value == nil {
		return nil, fmt.Errorf("%w: parameter %s is empty", ErrEmptyParameter, name)
	}

	var fc fileConfig
	if err := decodeYAML(bytes.NewBufferString(*out.Parameter.Value), &fc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal parameter %s: %w", name, err)
	}

	return fc.toStructured(), nil
}
