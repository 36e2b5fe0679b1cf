package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/corretora-saude/api-formulario/internal/config"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type secretsAPI interface {
	GetSecretValue(
		ctx context.Context, in *secretsmanager.GetSecretValueInput,
		optFns ...func(*secretsmanager.Options),
	) (*secretsmanager.GetSecretValueOutput, error)
}

var ErrSemCredenciais = errors.New("credenciais do banco ausentes: defina DB_USERNAME/DB_PASSWORD ou DB_SECRET_ID")

func initSecretsConfig(ctx context.Context) (*secretsmanager.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return secretsmanager.NewFromConfig(cfg), nil
}

// retrieveCredentials prefere usuário e senha do ambiente; sem eles lê o
// segredo indicado em DB_SECRET_ID
func retrieveCredentials(
	ctx context.Context, cfg config.DBConfig, secrets secretsAPI,
) (string, string, error) {
	if cfg.Username != "" && cfg.Password != "" {
		return cfg.Username, cfg.Password, nil
	}
	if cfg.SecretID == "" {
		return "", "", ErrSemCredenciais
	}
	if secrets == nil {
		client, err := initSecretsConfig(ctx)
		if err != nil {
			return "", "", fmt.Errorf("configurar AWS: %w", err)
		}
		secrets = client
	}

	input := &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(cfg.SecretID),
		VersionStage: aws.String("AWSCURRENT"),
	}
	result, err := secrets.GetSecretValue(ctx, input)
	if err != nil {
		return "", "", fmt.Errorf("ler segredo %s: %w", cfg.SecretID, err)
	}

	var secret Credentials
	if err := json.Unmarshal([]byte(aws.ToString(result.SecretString)), &secret); err != nil {
		return "", "", fmt.Errorf("segredo %s malformado: %w", cfg.SecretID, err)
	}
	return secret.Username, secret.Password, nil
}
