package config

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/kasuboski/marquee/config/mocks"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	t.Run("fail to read in config", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cu := mocks.NewMockConfigUnmarshaler(ctrl)

		wantErr := errors.New("expected testing error")
		cu.EXPECT().ConfigFileUsed().Times(1).Return("fake-config.yaml")
		cu.EXPECT().ReadInConfig().Times(1).Return(wantErr)
		c, err := New(cu)
		if err == nil {
			t.Errorf("TestNew() err = %v, want %v", err, wantErr)
		}

		wantConfig := Config{}
		if !reflect.DeepEqual(c, wantConfig) {
			t.Errorf("TestNew() config = %v, want %v", c, wantConfig)
		}
	})

	t.Run("fail to unmarshal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cu := mocks.NewMockConfigUnmarshaler(ctrl)

		wantErr := errors.New("bad decode")
		cu.EXPECT().ConfigFileUsed().Times(1).Return("")
		cu.EXPECT().ReadInConfig().Times(0)
		cu.EXPECT().Unmarshal(gomock.Any()).Times(1).Return(wantErr)

		_, err := New(cu)
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("success with file", func(t *testing.T) {
		cu := viper.New()
		cu.SetConfigFile("./testing/config.yaml")
		c, err := New(cu)
		if err != nil {
			t.Errorf("TestNew() err = %v, want %v", err, nil)
		}

		wantConfig := Config{
			TMDB: TMDB{
				APIURL:       "https://my-tmdb-host/3",
				AccessToken:  "my-access-token",
				ImageBaseURL: "https://my-image-host/t/p/w500",
				Language:     "en-US",
				Timeout:      5 * time.Second,
			},
			Server: Server{
				Port:        9090,
				CORSOrigins: []string{"https://marquee.example.com"},
			},
			Embed: Embed{
				BaseURL:      "https://vidlink.pro",
				AllowedHosts: []string{"vidlink.pro", "youtube.com"},
				Options: EmbedOptions{
					PrimaryColor: "63b8bc",
					Autoplay:     true,
				},
			},
		}

		if !reflect.DeepEqual(c, wantConfig) {
			t.Errorf("TestNew() config = %+v, want %+v", c, wantConfig)
		}
	})

	t.Run("success without file", func(t *testing.T) {
		cu := viper.New()
		cu.SetConfigFile("")
		cu.SetDefault("tmdb.apiURL", "https://api.themoviedb.org/3")
		cu.SetDefault("search.defaultLimit", 18)
		c, err := New(cu)
		if err != nil {
			t.Errorf("TestNew() err = %v, want %v", err, nil)
		}

		wantConfig := Config{
			TMDB: TMDB{
				APIURL: "https://api.themoviedb.org/3",
			},
			Search: Search{
				DefaultLimit: 18,
			},
		}

		if !reflect.DeepEqual(c, wantConfig) {
			t.Errorf("TestNew() config = %+v, want %+v", c, wantConfig)
		}
	})
}

func validConfig() Config {
	return Config{
		TMDB: TMDB{
			APIURL:       "https://api.themoviedb.org/3",
			AccessToken:  "token",
			ImageBaseURL: "https://image.tmdb.org/t/p/w500",
			Language:     "en-US",
			Timeout:      8 * time.Second,
		},
		Server: Server{
			Port:            8080,
			ShutdownTimeout: 3 * time.Second,
		},
		Embed: Embed{
			BaseURL:      "https://vidlink.pro",
			AllowedHosts: []string{"vidlink.pro", "youtube.com"},
			Options: EmbedOptions{
				PrimaryColor: "63b8bc",
			},
		},
		Search: Search{
			DefaultLimit: 18,
		},
		Log: Log{
			Level: "info",
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{
			name:   "missing access token",
			mutate: func(c *Config) { c.TMDB.AccessToken = "" },
		},
		{
			name:   "bad api url",
			mutate: func(c *Config) { c.TMDB.APIURL = "not a url" },
		},
		{
			name:   "timeout too long",
			mutate: func(c *Config) { c.TMDB.Timeout = time.Minute },
		},
		{
			name:   "port out of range",
			mutate: func(c *Config) { c.Server.Port = 70000 },
		},
		{
			name:   "no allowed hosts",
			mutate: func(c *Config) { c.Embed.AllowedHosts = nil },
		},
		{
			name:   "bad embed color",
			mutate: func(c *Config) { c.Embed.Options.PrimaryColor = "#zz" },
		},
		{
			name:   "zero search limit",
			mutate: func(c *Config) { c.Search.DefaultLimit = 0 },
		},
		{
			name:   "unknown log level",
			mutate: func(c *Config) { c.Log.Level = "verbose" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
