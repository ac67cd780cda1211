package deps

import (
	"context"
	"fmt"
	"simpleauth/internal/config"
	dl "simpleauth/internal/core/domain/logging"
	duow "simpleauth/internal/core/domain/unit_of_work"
	"simpleauth/internal/core/domain/user"
	uow "simpleauth/internal/db/unit_of_work"
	dbuser "simpleauth/internal/db/user"
	"simpleauth/internal/implementations/activation"
	"simpleauth/internal/implementations/email"
	"simpleauth/internal/implementations/logging"
	passwordhasher "simpleauth/internal/implementations/password_hasher"
	"simpleauth/internal/rabbitmq"
	publisher "simpleauth/internal/rabbitmq/publishers/activation_email"
	redisstore "simpleauth/internal/redis"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB       *pgxpool.Pool
	Redis    *redis.Client
	Rabbitmq *rabbitmq.Connection

	Now func() time.Time

	UnitOfWork               duow.UnitOfWork
	UserRepository           user.UserRepository
	ActivationCodeRepository user.ActivationCodeRepository

	PasswordHasher          user.PasswordHasher
	ActivationCodeGenerator user.ActivationCodeGenerator

	// ActivationCodeSender is the dispatch path the services see: either the
	// concrete EmailSender directly, or the AMQP publisher in front of it.
	ActivationCodeSender user.ActivationCodeSender
	// EmailSender is the concrete delivery channel (console or SES); the
	// AMQP consumer delivers through it.
	EmailSender user.ActivationCodeSender
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.initActivationCodeRepository()
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)

	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.ActivationCodeGenerator = activation.NewCodeGenerator()

	deps.initEmailSender()
	closePublisher := deps.initActivationCodeSender()

	flushSentry := deps.initSentry()

	return deps, func() {
		closeFuncs := []func(){
			closePublisher,
			closeRabbitmqConn,
			closeRedisClient,
			closePgxPool,
			closeLogger,
			flushSentry,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	if deps.Config.RedisURL == "" {
		return func() {}
	}
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	if deps.Config.AmqpURL == "" {
		return func() {}
	}
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.AmqpURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initActivationCodeRepository() {
	switch deps.Config.ActivationCodeStore {
	case config.ActivationCodeStoreRedis:
		deps.ActivationCodeRepository = redisstore.NewActivationCodeRepository(deps.Redis)
		deps.UnitOfWork = uow.NewPgxUnitOfWorkWithCodeStore(deps.DB, deps.ActivationCodeRepository)
	default:
		deps.ActivationCodeRepository = dbuser.NewPgxActivationCodeRepository(deps.DB)
		deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	}
}

func (deps *Deps) initEmailSender() {
	if deps.Config.EmailSender == config.EmailSenderSes {
		deps.initAwsConfig()
		deps.EmailSender = email.NewSesSender(
			deps.AwsConfig,
			deps.Config.AwsEmailSender,
			deps.Config.AwsEmailActivationTemplate,
		)
		return
	}
	deps.EmailSender = email.NewConsoleSender(deps.Logger)
}

func (deps *Deps) initActivationCodeSender() func() {
	if deps.Rabbitmq == nil {
		deps.ActivationCodeSender = deps.EmailSender
		return func() {}
	}

	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}
	queue := deps.Config.AmqpActivationEmailQueue
	if _, err := rabbitmqChannel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ queue.", dl.Entry("err", err))
		panic(err)
	}

	deps.ActivationCodeSender = publisher.NewRabbitMQ(deps.Logger, rabbitmqChannel, queue)
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down activation email publisher.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Activation email publisher shut down.")
	}
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initSentry() func() {
	if deps.Config.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              deps.Config.SentryDSN,
			TracesSampleRate: 0.01,
		})
		if err != nil {
			panic(fmt.Sprintf("could not init Sentry: %v\n", err))
		}
		deps.Logger.Info(context.Background(), "Sentry has been successfully initialized.")
		return func() {
			ok := sentry.Flush(5 * time.Second)
			deps.Logger.Info(context.Background(), "Sentry events flushed.", dl.Entry("ok", ok))
		}
	}

	deps.Logger.Info(context.Background(), "Sentry is disabled.")
	return func() {}
}
