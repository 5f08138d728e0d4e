package blob

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no such key", &types.NoSuchKey{}, ErrNotFound},
		{"no such bucket", &types.NoSuchBucket{}, ErrNotFound},
		{"head not found", &types.NotFound{}, ErrNotFound},
		{"access denied code", &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"}, ErrAccessDenied},
		{"forbidden code", &smithy.GenericAPIError{Code: "Forbidden", Message: "denied"}, ErrAccessDenied},
		{"not found code", &smithy.GenericAPIError{Code: "NotFound", Message: "missing"}, ErrNotFound},
		{"throttling", &smithy.GenericAPIError{Code: "SlowDown", Message: "slow down"}, ErrTransient},
		{"network error", errors.New("dial tcp: connection refused"), ErrTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestNewS3RequiresBucket(t *testing.T) {
	if _, err := NewS3(context.Background(), S3Options{}); err == nil {
		t.Fatal("expected error for missing bucket name")
	}
}
