package deps

import (
	"blogify/internal/config"
	dl "blogify/internal/core/domain/logging"
	"blogify/internal/core/domain/post"
	drl "blogify/internal/core/domain/rate_limiter"
	duow "blogify/internal/core/domain/unit_of_work"
	"blogify/internal/core/domain/user"
	"blogify/internal/db"
	dbpost "blogify/internal/db/post"
	uow "blogify/internal/db/unit_of_work"
	dbuser "blogify/internal/db/user"
	"blogify/internal/implementations/email"
	"blogify/internal/implementations/logging"
	passwordhasher "blogify/internal/implementations/password_hasher"
	passwordresetter "blogify/internal/implementations/password_resetter"
	"blogify/internal/implementations/picture"
	postevents "blogify/internal/implementations/post_events"
	ratelimiter "blogify/internal/implementations/rate_limiter"
	"blogify/internal/implementations/session"
	"blogify/internal/rabbitmq"
	passwordresetemail "blogify/internal/rabbitmq/publishers/password_reset_email"
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/r3labs/sse/v2"
)

const LOCAL_RATE_LIMITER_PRUNE_INTERVAL = 10 * time.Minute

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB        *pgxpool.Pool
	Redis     *redis.Client
	Rabbitmq  *rabbitmq.Connection
	SseServer *sse.Server

	Now func() time.Time

	UnitOfWork        duow.UnitOfWork
	UserRepository    user.UserRepository
	SessionRepository user.SessionRepository
	PostRepository    post.Repository

	RateLimiter drl.RateLimiter

	UserSessionTokenGenerator user.SessionTokenGenerator
	PasswordHasher            user.PasswordHasher
	PasswordResetter          user.PasswordResetter
	// EmailSender delivers reset emails right away, PasswordResetTokenSender
	// may defer delivery to the queue consumer.
	EmailSender              user.PasswordResetTokenSender
	PasswordResetTokenSender user.PasswordResetTokenSender

	PictureProcessor    user.PictureProcessor
	PictureStorage      user.PictureStorage
	LocalPictureStorage *picture.LocalStorage

	PostEventPublisher post.EventPublisher
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	deps.applyMigrations()
	closePgxPool := deps.initPgxPool()
	closeRateLimiter := deps.initRateLimiter()
	closeRabbitmqConn := deps.initRabbitmqConnection()
	closeSseServer := deps.initSseServer()

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)
	deps.SessionRepository = dbuser.NewPgxSessionRepository(deps.DB)
	deps.PostRepository = dbpost.NewPgxRepository(deps.DB)

	deps.UserSessionTokenGenerator = session.NewRandomUUIDs()
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.initPasswordResetter()
	deps.initEmailSender()
	closePasswordResetPublisher := deps.initPasswordResetTokenSender()

	deps.initPictureStorage()
	deps.PictureProcessor = picture.NewThumbnailer(deps.Now)
	deps.PostEventPublisher = postevents.NewSSE(deps.SseServer, deps.PictureStorage)

	return deps, func() {
		closeFuncs := []func(){
			closeSseServer,
			sequentially(closePasswordResetPublisher, closeRabbitmqConn),
			closeRateLimiter,
			closePgxPool,
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
		closeLogger()
	}
}

// sequentially runs closers one after another, for dependencies that must be
// released in order.
func sequentially(closeFuncs ...func()) func() {
	return func() {
		for _, closeFunc := range closeFuncs {
			closeFunc()
		}
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
	deps.Now = func() time.Time { return time.Now().UTC() }
}

func (deps *Deps) initAwsConfig() {
	options := []func(*awsConfig.LoadOptions) error{
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	}
	if deps.Config.AwsAccessKey != "" {
		options = append(options, awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		))
	}
	cfg, err := awsConfig.LoadDefaultConfig(context.Background(), options...)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(deps.Config.Debug)
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) applyMigrations() {
	if deps.Config.MigrationsPath == "" {
		deps.Logger.Info(context.Background(), "Migrations path is not set, skip applying migrations.")
		return
	}
	if err := db.ApplyMigrations(deps.Config.MigrationsPath, deps.Config.PostgresqlURL); err != nil {
		deps.Logger.Error(context.Background(), "Could not apply migrations.", dl.Entry("err", err))
		panic(err)
	}
	deps.Logger.Info(context.Background(), "Migrations have been applied.")
}

func (deps *Deps) initPgxPool() func() {
	pool, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = pool
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		pool.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRateLimiter() func() {
	if deps.Config.RedisURL == "" {
		local := ratelimiter.NewLocal(deps.Logger, deps.Now)
		ctx, cancel := context.WithCancel(context.Background())
		go local.RunPruning(ctx, LOCAL_RATE_LIMITER_PRUNE_INTERVAL)
		deps.RateLimiter = local
		deps.Logger.Info(context.Background(), "Redis is not configured, using in-process rate limiter.")
		return cancel
	}

	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	deps.RateLimiter = ratelimiter.NewRedis(redisClient, deps.Logger, deps.Now)
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	if deps.Config.RabbitmqURL == "" {
		deps.Logger.Info(context.Background(), "RabbitMQ is not configured, emails are sent synchronously.")
		return func() {}
	}
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
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

func (deps *Deps) initSseServer() func() {
	deps.SseServer = sse.New()
	deps.SseServer.AutoStream = false
	deps.SseServer.AutoReplay = false
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down SSE server.")
		deps.SseServer.Close()
		deps.Logger.Info(context.Background(), "SSE server shut down.")
	}
}

func (deps *Deps) initPasswordResetter() {
	resetter, err := passwordresetter.NewHMAC(
		deps.Config.Secret,
		deps.Config.PasswordResetTokenMaxAge,
		deps.Config.PasswordResetClockSkew,
		deps.Now,
	)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create password resetter.", dl.Entry("err", err))
		panic(err)
	}
	deps.PasswordResetter = resetter
}

func (deps *Deps) initEmailSender() {
	baseURL := deps.Config.PasswordResetBaseURL
	switch deps.Config.EmailBackend {
	case config.EMAIL_BACKEND_SES:
		deps.EmailSender = email.NewSESSender(
			deps.AwsConfig,
			deps.Config.EmailSender,
			deps.Config.AwsEmailPasswordResetTemplate,
			baseURL,
		)
	case config.EMAIL_BACKEND_SMTP:
		deps.EmailSender = email.NewSMTPSender(
			deps.Logger,
			email.SMTPConfig{
				Host:     deps.Config.MailServer,
				Port:     deps.Config.MailPort,
				Username: deps.Config.MailUsername,
				Password: deps.Config.MailPassword,
				UseTLS:   deps.Config.MailUseTLS,
			},
			deps.Config.EmailSender,
			baseURL,
		)
	default:
		deps.EmailSender = email.NewLogSender(deps.Logger, baseURL)
	}
	deps.Logger.Info(context.Background(), "Email backend selected.", dl.Entry("backend", deps.Config.EmailBackend))
}

func (deps *Deps) initPasswordResetTokenSender() func() {
	if deps.Rabbitmq == nil {
		deps.PasswordResetTokenSender = deps.EmailSender
		return func() {}
	}

	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}
	queue := deps.Config.RabbitmqPasswordResetQueue
	if err := rabbitmqChannel.DeclareQueue(queue); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not create RabbitMQ queue.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.PasswordResetTokenSender = passwordresetemail.NewRabbitMQ(deps.Logger, rabbitmqChannel, "", queue)
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down password reset email publisher.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Password reset email publisher shut down.")
	}
}

func (deps *Deps) initPictureStorage() {
	switch deps.Config.PictureStorage {
	case config.PICTURE_STORAGE_S3:
		deps.PictureStorage = picture.NewS3Storage(
			deps.AwsConfig,
			deps.Config.S3Bucket,
			deps.Config.S3Prefix,
			deps.Config.PictureBaseURL,
			deps.Config.AwsEndpoint,
		)
	default:
		storage, err := picture.NewLocalStorage(deps.Config.PictureLocalDir, deps.Config.PictureBaseURL)
		if err != nil {
			deps.Logger.Error(context.Background(), "Could not init picture storage.", dl.Entry("err", err))
			panic(err)
		}
		deps.PictureStorage = storage
		deps.LocalPictureStorage = storage
	}
}
