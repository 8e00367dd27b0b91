package cdklogger

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/assert"
)

func TestMessagePrefix(t *testing.T) {
	app := awscdk.NewApp(nil)
	stack := awscdk.NewStack(app, jsii.String("Stack"), nil)
	child := constructs.NewConstruct(stack, jsii.String("Records"))

	assert.Equal(t, "hello 1", message(child, "", "hello %d", 1))
	// path "Stack/Records" already names the construct
	assert.Equal(t, "hello", message(child, "Records", "hello"))
	assert.Equal(t, "[alias] hello", message(child, "alias", "hello"))
}
