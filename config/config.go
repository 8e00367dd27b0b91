package config

import (
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// DefaultTargetsFile is read when 'cdk.json/context/targetsFile' is not set.
const DefaultTargetsFile = "targets.yaml"

// StackSuffix reads 'cdk.json/context/stackSuffix' (e.g. "ghostnet", "mainnet").
// Empty when unset.
func StackSuffix(scope constructs.Construct) string {
	ctxValue := scope.Node().TryGetContext(jsii.String("stackSuffix"))
	if v, ok := ctxValue.(string); ok {
		return v
	}
	return ""
}

// WithStackSuffix appends the stack suffix to name, when one is configured.
func WithStackSuffix(scope constructs.Construct, name string) string {
	if suffix := StackSuffix(scope); suffix != "" {
		return name + "-" + suffix
	}
	return name
}

// TargetsFile reads 'cdk.json/context/targetsFile'.
func TargetsFile(scope constructs.Construct) string {
	ctxValue := scope.Node().TryGetContext(jsii.String("targetsFile"))
	if v, ok := ctxValue.(string); ok && v != "" {
		return v
	}
	return DefaultTargetsFile
}

// CdkEnv determines the AWS environment (account+region) in which our stack is to
// be deployed. For more information see: https://docs.aws.amazon.com/cdk/latest/guide/environments.html
func CdkEnv() *awscdk.Environment {
	account := os.Getenv("CDK_DEPLOY_ACCOUNT")
	region := os.Getenv("CDK_DEPLOY_REGION")

	if len(account) == 0 || len(region) == 0 {
		account = os.Getenv("CDK_DEFAULT_ACCOUNT")
		region = os.Getenv("CDK_DEFAULT_REGION")
	}

	return &awscdk.Environment{
		Account: jsii.String(account),
		Region:  jsii.String(region),
	}
}

// EdgeCertificate reads 'cdk.json/context/edgeCertificate'. When true, certificates
// are issued in us-east-1 so CloudFront can use them.
func EdgeCertificate(scope constructs.Construct) bool {
	switch v := scope.Node().TryGetContext(jsii.String("edgeCertificate")).(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}
