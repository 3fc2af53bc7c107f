package resources

import (
	"io/ioutil"
	"testing"

	"github.com/activecm/cybershield/config"
)

//InitTestResources creates a default testing resource bundle.
//Log output is discarded.
func InitTestResources(t *testing.T) *Resources {
	conf, err := config.LoadTestingConfig()
	if err != nil {
		t.Fatal(err)
	}

	// Fire up the logging system
	log, err := initLogger(&conf.S.Log)
	if err != nil {
		t.Fatal(err)
	}
	log.Out = ioutil.Discard

	return &Resources{
		Config: conf,
		Log:    log,
	}
}
