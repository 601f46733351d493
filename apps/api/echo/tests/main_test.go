package tests

import (
	"io/ioutil"
	"log"
	"os"
	"testing"

	. "github.com/trezcool/sanaa/apps/api/echo"
	"github.com/trezcool/sanaa/core/profile"
	"github.com/trezcool/sanaa/core/signup"
	emailsvc "github.com/trezcool/sanaa/services/email"
	identitysvc "github.com/trezcool/sanaa/services/identity"
	logsvc "github.com/trezcool/sanaa/services/logger"
	inmemdb "github.com/trezcool/sanaa/storage/database/inmem"
)

var (
	app         Server
	profileRepo profile.Repository
	profileSvc  profile.Service
	drafts      signup.DraftStore
	handoffs    signup.HandoffStore
	broker      *identitysvc.DummyBroker
)

func TestMain(m *testing.M) {
	// set up stores & repos
	db := inmemdb.Open()
	profileRepo = inmemdb.NewProfileRepository(db)
	drafts = inmemdb.NewDraftStore(db)
	handoffs = inmemdb.NewHandoffStore(db)

	// set up services
	logger := logsvc.NewStdLogger(log.New(ioutil.Discard, "", 0))
	mailSvc := emailsvc.NewConsoleServiceMock()
	profileSvc = profile.NewService(profileRepo, mailSvc, logger)
	broker = identitysvc.NewDummyBroker()

	// set up server
	app = NewServer(
		ServerDeps{
			DisableReqLogs: true,
			Logger:         logger,
			ProfileSvc:     profileSvc,
			Drafts:         drafts,
			Handoffs:       handoffs,
			Broker:         broker,
		},
	)

	os.Exit(m.Run())
}
