// Command blinkband samples a MAX30102 PPG sensor, smooths and normalizes the
// readings, and periodically posts a telemetry record to a remote collector.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yudhisthereal/blinkband/internal/config"
	"github.com/yudhisthereal/blinkband/internal/led"
	"github.com/yudhisthereal/blinkband/internal/netlink"
	"github.com/yudhisthereal/blinkband/internal/ppg"
	"github.com/yudhisthereal/blinkband/internal/schedule"
	"github.com/yudhisthereal/blinkband/internal/sensor"
	"github.com/yudhisthereal/blinkband/internal/status"
	"github.com/yudhisthereal/blinkband/internal/telemetry"
	"github.com/yudhisthereal/blinkband/internal/web"
)

func main() {
	configPath := flag.String("config", "/etc/blinkband.yaml", "Configuration file path")
	collector := flag.String("collector", "", "Collector ingest URL (overrides config)")
	broker := flag.String("broker", "", "MQTT broker address for a secondary telemetry sink (overrides config)")
	deviceID := flag.String("device-id", "", "Device identifier (overrides config)")
	sensorDev := flag.String("sensor", "", "Sensor serial device (overrides config)")
	httpAddr := flag.String("http", ":8080", "HTTP status address (empty to disable)")
	ledPin := flag.Int("led-pin", 0, "BCM pin for the link LED (0 to disable)")
	printReading := flag.Bool("print-reading", false, "Print one sensor reading and exit")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
	if *collector != "" {
		cfg.Collector.URL = *collector
	}
	if *broker != "" {
		cfg.MQTT.Broker = *broker
	}
	if *deviceID != "" {
		cfg.DeviceID = *deviceID
	}
	if *sensorDev != "" {
		cfg.Sensor.Device = *sensorDev
	}

	if err := run(cfg, *httpAddr, *ledPin, *printReading); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg *config.Config, httpAddr string, ledPin int, printReading bool) error {
	// Initialize the sensor. Without it nothing downstream is meaningful,
	// so failure here is fatal at startup.
	reader, err := sensor.NewRealReader(cfg.Sensor.Device, cfg.Sensor.Baud)
	if err != nil {
		return fmt.Errorf("init sensor: %w", err)
	}
	defer reader.Close()

	if err := reader.Setup(sensor.Config{
		Brightness:    cfg.Sensor.Brightness,
		SampleAverage: cfg.Sensor.SampleAverage,
		LEDMode:       cfg.Sensor.LEDMode,
		SampleRate:    cfg.Sensor.SampleRate,
		PulseWidth:    cfg.Sensor.PulseWidth,
		ADCRange:      cfg.Sensor.ADCRange,
	}); err != nil {
		return fmt.Errorf("setup sensor: %w", err)
	}

	// Print reading mode
	if printReading {
		red, err := reader.RedSample()
		if err != nil {
			return fmt.Errorf("read red: %w", err)
		}
		ir, err := reader.IRSample()
		if err != nil {
			return fmt.Errorf("read ir: %w", err)
		}
		temp, err := reader.Temperature()
		if err != nil {
			return fmt.Errorf("read temperature: %w", err)
		}
		fmt.Printf("red: %d, ir: %d, temp: %.1f°C\n", red, ir, temp)
		return nil
	}

	// Bring the network up before waiting for skin contact. A dead link is
	// not fatal: sampling proceeds and transmission recovers on a later
	// loop pass.
	monitor := netlink.NewMonitor(
		netlink.NewRealLink(),
		netlink.Credentials{SSID: cfg.WiFi.SSID, Password: cfg.WiFi.Password},
		cfg.Timing.ReconnectAttempts,
		cfg.Timing.ReconnectDelay,
		nil,
	)
	monitor.Check()

	log.Printf("waiting for sensor contact (ir >= %d)", cfg.Sensor.ContactThreshold)
	if err := sensor.WaitForContact(reader, cfg.Sensor.ContactThreshold, sensor.ContactPoll, nil); err != nil {
		return fmt.Errorf("wait for contact: %w", err)
	}
	log.Printf("contact detected, sensor ready")

	// Telemetry sinks: HTTP always, MQTT when a broker is configured.
	senders := []telemetry.Sender{telemetry.NewHTTPSender(cfg.Collector.URL)}
	if cfg.MQTT.Broker != "" {
		mq, err := telemetry.NewMQTTSender(cfg.MQTT.Broker, cfg.MQTT.Topic)
		if err != nil {
			log.Printf("mqtt sink disabled: %v", err)
		} else {
			senders = append(senders, mq)
		}
	}
	defer func() {
		for _, s := range senders {
			s.Close()
		}
	}()

	var indicator led.Indicator
	if ledPin > 0 {
		real, err := led.NewRealIndicator(ledPin)
		if err != nil {
			log.Printf("led disabled: %v", err)
		} else {
			indicator = real
			defer real.Close()
		}
	}

	tracker := status.NewTracker(time.Now(), status.Config{
		DeviceID:       cfg.DeviceID,
		CollectorURL:   cfg.Collector.URL,
		MQTTBroker:     cfg.MQTT.Broker,
		HTTPAddr:       httpAddr,
		PollMs:         cfg.Timing.Poll.Milliseconds(),
		SendIntervalMs: cfg.Timing.SendInterval.Milliseconds(),
	})

	// Start HTTP status server
	if httpAddr != "" {
		srv := web.New(httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", httpAddr)
	}

	log.Printf("started: device=%s poll=%v send=%v collector=%s",
		cfg.DeviceID, cfg.Timing.Poll, cfg.Timing.SendInterval, cfg.Collector.URL)

	ticker := time.NewTicker(cfg.Timing.Poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	start := time.Now()
	proc := ppg.NewProcessor(reader, start)
	norm := ppg.NewNormalizer(ppg.Bounds{
		RedMin: cfg.Calibration.RedMin,
		RedMax: cfg.Calibration.RedMax,
		IRMin:  cfg.Calibration.IRMin,
		IRMax:  cfg.Calibration.IRMax,
	})
	sched := schedule.New(cfg.Timing.SendInterval, start)

	return runLoop(reader, monitor, proc, norm, sched, senders, indicator, tracker,
		cfg.DeviceID, start, time.Now, ticker.C, sigCh)
}

func runLoop(reader sensor.Reader, monitor *netlink.Monitor, proc *ppg.Processor,
	norm ppg.Normalizer, sched *schedule.Scheduler, senders []telemetry.Sender,
	indicator led.Indicator, tracker *status.Tracker, deviceID string, start time.Time,
	now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			if tracker != nil {
				snap := tracker.Snapshot()
				log.Printf("final: sends ok=%d failed=%d uptime=%v",
					snap.Sends.OK, snap.Sends.Failed, snap.Uptime().Truncate(time.Second))
			}
			return nil

		case <-tick:
			t := now()

			// Connectivity first: a down link blocks here in the reconnect
			// budget, then the loop continues either way.
			linkState := monitor.Check()
			if tracker != nil {
				tracker.SetLink(linkState)
			}
			if indicator != nil {
				if err := indicator.SetLinkUp(linkState == netlink.Connected); err != nil {
					log.Printf("led error: %v", err)
				}
			}

			red, err := reader.RedSample()
			if err != nil {
				log.Printf("sensor read error: %v", err)
				continue
			}
			ir, err := reader.IRSample()
			if err != nil {
				log.Printf("sensor read error: %v", err)
				continue
			}

			smoothed := proc.Ingest(ppg.RawSample{Red: red, IR: ir})

			temp, err := proc.MaybeRefreshTemperature(t)
			if err != nil {
				log.Printf("temperature read error: %v", err)
			}

			motion := proc.EstimateMotion(smoothed.IR)
			n := norm.Normalize(smoothed)

			if tracker != nil {
				tracker.UpdateReading(smoothed, n, temp, motion)
			}

			if !sched.Tick(t) {
				continue
			}

			log.Printf("reading: raw red=%d ir=%d temp=%.1f | norm red=%.3f ir=%.3f motion=%.3f",
				smoothed.Red, smoothed.IR, temp, n.Red, n.IR, motion)

			rec := telemetry.BuildRecord(n, temp, motion, smoothed, deviceID, t, start)
			for _, sender := range senders {
				res, err := sender.Send(rec)
				if err != nil {
					log.Printf("send error: %v", err)
					// Don't crash on send failure; the next cycle retries.
					if tracker != nil {
						tracker.RecordSend(0, false)
					}
					continue
				}
				if !res.OK() {
					log.Printf("send rejected: status=%d body=%q", res.Status, res.Body)
				}
				if tracker != nil {
					tracker.RecordSend(res.Status, res.OK())
				}
			}
		}
	}
}
