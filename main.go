package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/community-aid/api"
	"github.com/bitmark-inc/community-aid/auth"
	"github.com/bitmark-inc/community-aid/external/broker"
	"github.com/bitmark-inc/community-aid/external/imagestore"
	"github.com/bitmark-inc/community-aid/schema"
	"github.com/bitmark-inc/community-aid/store"
)

var (
	server     *api.Server
	mongoStore store.MongoStore
	publisher  broker.Publisher
)

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	// Values from a .env file become env vars first
	if err := godotenv.Load(); err == nil {
		fmt.Println("Loaded .env file.")
	}

	viper.SetDefault("server.port", "5000")
	viper.SetDefault("server.cors.origin", "http://localhost:8080")
	viper.SetDefault("mongo.database", "community-aid")
	viper.SetDefault("mongo.pool", 10)
	viper.SetDefault("redis.ttl", "5m")
	viper.SetDefault("nats.prefix", "aid")
	viper.SetDefault("minio.bucket", "donations")
	viper.SetDefault("jwt.expire", 24)

	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("aid")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

// loadDirectory reads the known accounts from `auth.users`. The demo
// accounts are used when none is configured.
func loadDirectory() (*auth.Directory, error) {
	var credentials []schema.Credential
	if err := viper.UnmarshalKey("auth.users", &credentials); err != nil {
		return nil, err
	}

	if len(credentials) == 0 {
		log.WithField("prefix", "init").Warn("No account configured. Use the demo accounts.")
		return auth.NewDemoDirectory()
	}

	return auth.NewDirectory(credentials), nil
}

func main() {
	var configFile string

	initialCtx, cancelInitialization := context.WithCancel(context.Background())

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Server is preparing to shutdown")

		if initialCtx != nil && cancelInitialization != nil {
			log.Info("Cancelling initialization")
			cancelInitialization()
			<-initialCtx.Done()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if server != nil {
			log.Info("Shutdown api server")
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Server Shutdown:", err)
			}
		}

		if publisher != nil {
			log.Info("Shutting down event publisher")
			publisher.Close()
		}

		if mongoStore != nil {
			log.Info("Shutting down db store")
			mongoStore.Close()
		}

		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}()

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", "init").Info("Initialized sentry")

	directory, err := loadDirectory()
	if err != nil {
		log.Panic(err)
	}
	log.WithField("prefix", "init").Info("Loaded account directory")

	jwtSecret := viper.GetString("jwt.secret")
	if jwtSecret == "" {
		log.Panic("jwt.secret is required")
	}
	tokens := auth.NewTokenIssuer(jwtSecret, time.Duration(viper.GetInt("jwt.expire"))*time.Hour)

	// initialise mongodb connections
	if conn := viper.GetString("mongo.conn"); conn != "" {
		opts := options.Client().ApplyURI(conn)
		opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
		mongoClient, err := mongo.Connect(initialCtx, opts)
		if nil != err {
			log.Panicf("connect mongo database with error: %s", err)
		}
		mongoStore = store.NewMongoStore(mongoClient, viper.GetString("mongo.database"))
	} else {
		log.WithField("prefix", "init").Warn("No mongo.conn configured. Listings are kept in memory.")
		mongoStore = store.NewMemoryStore()
	}

	// Optional listing cache
	if addr := viper.GetString("redis.addr"); addr != "" {
		cache, err := store.NewRedisCache(addr, viper.GetDuration("redis.ttl"))
		if err != nil {
			log.Panicf("connect redis with error: %s", err)
		}
		mongoStore = store.NewCachedStore(mongoStore, cache)
		log.WithField("prefix", "init").Info("Initialized listing cache")
	}

	// Optional change events
	if url := viper.GetString("nats.url"); url != "" {
		publisher, err = broker.New(url, viper.GetString("nats.prefix"))
		if err != nil {
			log.Panicf("connect nats with error: %s", err)
		}
		log.WithField("prefix", "init").Info("Initialized event publisher")
	}

	// Optional image storage
	var images imagestore.ImageStore
	if endpoint := viper.GetString("minio.endpoint"); endpoint != "" {
		images, err = imagestore.New(initialCtx, imagestore.Config{
			Endpoint:  endpoint,
			AccessKey: viper.GetString("minio.access_key"),
			SecretKey: viper.GetString("minio.secret_key"),
			Bucket:    viper.GetString("minio.bucket"),
			UseSSL:    viper.GetBool("minio.use_ssl"),
			PublicURL: viper.GetString("minio.public_url"),
		})
		if err != nil {
			log.Panicf("initialize image storage with error: %s", err)
		}
		log.WithField("prefix", "init").Info("Initialized image storage")
	}

	// Init http server
	server = api.NewServer(
		mongoStore,
		directory,
		tokens,
		images,
		publisher)
	log.WithField("prefix", "init").Info("Initialized http server")

	// Remove initial context
	initialCtx = nil
	cancelInitialization = nil

	log.Fatal(server.Run(":" + viper.GetString("server.port")))
}
