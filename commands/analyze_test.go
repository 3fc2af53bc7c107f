package commands

import (
	"bytes"
	"errors"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/activecm/cybershield/pkg/authlog"
	"github.com/activecm/cybershield/pkg/threat"
	"github.com/activecm/cybershield/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	firstLog = "time,user,ip,status\n" +
		"t1,u1,1.2.3.4,LOGIN_FAIL\n" +
		"t1,u1,1.2.3.4,LOGIN_FAIL\n" +
		"t1,u1,1.2.3.4,LOGIN_FAIL\n"
	secondLog = "status,ip,user,time,extra\n" +
		"LOGIN_FAIL,1.2.3.4,u1,t2,x\n" +
		"LOGIN_FAIL,1.2.3.4,u1,t2,x\n" +
		"LOGIN_FAIL,5.6.7.8,u2,t3,x\n" +
		"LOGIN_SUCCESS,5.6.7.8,u3,t4,x\n"
)

func writeLog(t *testing.T, dir, name, contents string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, ioutil.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadBatchMergesFiles(t *testing.T) {
	dir := t.TempDir()
	res := resources.InitTestResources(t)

	first := writeLog(t, dir, "a.csv", firstLog)
	second := writeLog(t, dir, "b.csv", secondLog)

	batch, err := loadBatch(res, []string{first, second})
	require.NoError(t, err)
	require.Len(t, batch, 7)

	assert.Equal(t, authlog.LogRecord{Time: "t1", User: "u1", IP: "1.2.3.4", Status: "LOGIN_FAIL"}, batch[0])
	assert.Equal(t, authlog.LogRecord{Time: "t4", User: "u3", IP: "5.6.7.8", Status: "LOGIN_SUCCESS"}, batch[6])
}

func TestLoadBatchDirectory(t *testing.T) {
	dir := t.TempDir()
	res := resources.InitTestResources(t)

	writeLog(t, dir, "a.csv", firstLog)
	writeLog(t, dir, "notes.txt", "not a log")

	batch, err := loadBatch(res, []string{dir})
	require.NoError(t, err)
	assert.Len(t, batch, 3)
}

func TestLoadBatchErrors(t *testing.T) {
	dir := t.TempDir()
	res := resources.InitTestResources(t)

	_, err := loadBatch(res, []string{writeLog(t, dir, "notes.txt", "not a log")})
	assert.Error(t, err, "no supported files should be an error")

	good := writeLog(t, dir, "good.csv", firstLog)
	bad := writeLog(t, dir, "bad.csv", "time,user\nt1,u1\n")

	_, err = loadBatch(res, []string{good, bad})
	require.Error(t, err)

	var schemaErr *authlog.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, []string{"ip", "status"}, schemaErr.Missing)
	assert.Equal(t, bad, schemaErr.Source)
}

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	res := resources.InitTestResources(t)

	batch, err := loadBatch(res, []string{
		writeLog(t, dir, "a.csv", firstLog),
		writeLog(t, dir, "b.csv", secondLog),
	})
	require.NoError(t, err)

	threatReport := threat.NewAnalyzer(res.Config, res.Log).AnalyzeBatch(batch, nil)

	var csvOut bytes.Buffer
	require.NoError(t, writeReport(&csvOut, threatReport, formatCSV, false))
	assert.Equal(t,
		"ip,fail_count,risk_level,anomaly\n"+
			"1.2.3.4,5,HIGH,1\n"+
			"5.6.7.8,1,LOW,1\n",
		csvOut.String(),
	)

	var suspiciousOut bytes.Buffer
	require.NoError(t, writeReport(&suspiciousOut, threatReport, formatCSV, true))
	assert.Equal(t, "ip,fail_count,risk_level,anomaly\n", suspiciousOut.String(),
		"two distinct addresses are never flagged")

	var jsonOut bytes.Buffer
	require.NoError(t, writeReport(&jsonOut, threatReport, formatJSON, false))
	assert.Contains(t, jsonOut.String(), `"total_logs": 7`)
	assert.Contains(t, jsonOut.String(), `"unique_users": 3`)

	var humanOut bytes.Buffer
	require.NoError(t, writeReport(&humanOut, threatReport, formatHuman, false))
	assert.Contains(t, humanOut.String(), "1.2.3.4")
	assert.Contains(t, humanOut.String(), "NORMAL")
}

func TestWriteReportNoFailures(t *testing.T) {
	res := resources.InitTestResources(t)
	batch := authlog.LogBatch{
		{Time: "t1", User: "u1", IP: "1.2.3.4", Status: authlog.StatusLoginSuccess},
	}

	threatReport := threat.NewAnalyzer(res.Config, res.Log).AnalyzeBatch(batch, nil)

	var humanOut bytes.Buffer
	require.NoError(t, writeReport(&humanOut, threatReport, formatHuman, false))
	assert.Contains(t, humanOut.String(), "No failed login attempts detected")
}

func TestStatusFilter(t *testing.T) {
	assert.Nil(t, statusFilter(nil))
	assert.Nil(t, statusFilter([]string{}), "an unset flag should keep every status")
	assert.Equal(t, []string{"LOGIN_FAIL"}, statusFilter([]string{"LOGIN_FAIL"}))

	res := resources.InitTestResources(t)
	batch := authlog.LogBatch{
		{Time: "t1", User: "u1", IP: "1.2.3.4", Status: authlog.StatusLoginFail},
	}
	threatReport := threat.NewAnalyzer(res.Config, res.Log).AnalyzeBatch(batch, statusFilter([]string{}))
	assert.Equal(t, 1, threatReport.Summary.TotalLogs)
}

func TestShowStatuses(t *testing.T) {
	batch := authlog.LogBatch{
		{Status: "LOGIN_SUCCESS"},
		{Status: "LOGIN_FAIL"},
		{Status: "LOGIN_FAIL"},
		{Status: "LOCKED"},
	}

	var buf bytes.Buffer
	require.NoError(t, showStatuses(&buf, batch))
	assert.Equal(t,
		"Status,Records\n"+
			"LOGIN_SUCCESS,1\n"+
			"LOGIN_FAIL,2\n"+
			"LOCKED,1\n",
		buf.String(),
	)

	buf.Reset()
	require.NoError(t, showStatusesHuman(&buf, batch))
	assert.Contains(t, buf.String(), "LOCKED")
}

func TestCommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, command := range Commands() {
		names[command.Name] = true
	}

	for _, name := range []string{"analyze", "show-statuses", "test-config", "version"} {
		assert.True(t, names[name], name+" should be registered")
	}
}
