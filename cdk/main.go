package main

import (
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigateway"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsdynamodb"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

type LeagueStackProps struct {
	awscdk.StackProps
}

// NewLeagueStack deploys the league server as a Lambda behind API Gateway,
// storing the league blob in a single DynamoDB table.
func NewLeagueStack(scope constructs.Construct, id string, props *LeagueStackProps) awscdk.Stack {
	var stackProps awscdk.StackProps
	if props != nil {
		stackProps = props.StackProps
	}

	stack := awscdk.NewStack(scope, &id, &stackProps)

	table := awsdynamodb.NewTable(stack, jsii.String("LeagueTable"), &awsdynamodb.TableProps{
		TableName:     jsii.String("shembeldon-league"),
		PartitionKey:  &awsdynamodb.Attribute{Name: jsii.String("PK"), Type: awsdynamodb.AttributeType_STRING},
		SortKey:       &awsdynamodb.Attribute{Name: jsii.String("SK"), Type: awsdynamodb.AttributeType_STRING},
		BillingMode:   awsdynamodb.BillingMode_PAY_PER_REQUEST,
		RemovalPolicy: awscdk.RemovalPolicy_RETAIN,
	})

	fn := awslambda.NewFunction(stack, jsii.String("LeagueApi"), &awslambda.FunctionProps{
		Runtime:      awslambda.Runtime_PROVIDED_AL2023(),
		Architecture: awslambda.Architecture_ARM_64(),
		Handler:      jsii.String("bootstrap"),
		Code:         awslambda.Code_FromAsset(jsii.String("../dist"), nil),
		MemorySize:   jsii.Number(256),
		Timeout:      awscdk.Duration_Seconds(jsii.Number(15)),
		Environment: &map[string]*string{
			"APP":            jsii.String("prod"),
			"ENVIRONMENT":    jsii.String("production"),
			"STORAGE_DRIVER": jsii.String("dynamodb"),
			"DYNAMODB_TABLE": table.TableName(),
		},
	})

	table.GrantReadWriteData(fn)

	api := awsapigateway.NewLambdaRestApi(stack, jsii.String("LeagueApiGateway"), &awsapigateway.LambdaRestApiProps{
		Handler: fn,
	})

	awscdk.NewCfnOutput(stack, jsii.String("TableName"), &awscdk.CfnOutputProps{Value: table.TableName()})
	awscdk.NewCfnOutput(stack, jsii.String("ApiUrl"), &awscdk.CfnOutputProps{Value: api.Url()})

	return stack
}

func main() {
	app := awscdk.NewApp(nil)
	NewLeagueStack(app, "ShembeldonLeagueStack", &LeagueStackProps{
		StackProps: awscdk.StackProps{
			Env: &awscdk.Environment{
				Account: jsii.String(os.Getenv("CDK_DEFAULT_ACCOUNT")),
				Region:  jsii.String(os.Getenv("CDK_DEFAULT_REGION")),
			},
		},
	})
	app.Synth(nil)
}
