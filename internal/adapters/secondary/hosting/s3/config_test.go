package s3

import "testing"

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "complete",
			cfg:     Config{Host: "localhost:9000", AccessKey: "minioadmin", SecretKey: "minioadmin"},
			wantErr: false,
		},
		{
			name:    "missing host",
			cfg:     Config{AccessKey: "minioadmin", SecretKey: "minioadmin"},
			wantErr: true,
		},
		{
			name:    "missing access key",
			cfg:     Config{Host: "localhost:9000", SecretKey: "minioadmin"},
			wantErr: true,
		},
		{
			name:    "missing secret key",
			cfg:     Config{Host: "localhost:9000", AccessKey: "minioadmin"},
			wantErr: true,
		},
		{
			name:    "empty",
			cfg:     Config{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
