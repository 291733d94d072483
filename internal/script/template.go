package script

// scriptTemplate renders a Selenium (Python) script that fills the RPD
// intake form once per record.
const scriptTemplate = `# -*- coding: utf-8 -*-
# RPD görüşme kaydı otomasyonu ({{ .Mode }}, {{ len .Records }} kayıt)
# Oluşturulma: {{ .GeneratedAt }}
from selenium import webdriver
from selenium.webdriver.common.by import By
from selenium.webdriver.support import expected_conditions as EC
from selenium.webdriver.support.ui import Select, WebDriverWait

TARGET_URL = {{ py .TargetURL }}
WAIT_SECONDS = 15


def select_value(driver, name, value):
    WebDriverWait(driver, WAIT_SECONDS).until(
        EC.presence_of_element_located((By.NAME, name))
    )
    WebDriverWait(driver, WAIT_SECONDS).until(
        lambda d: any(o.get_attribute("value") == value
                      for o in Select(d.find_element(By.NAME, name)).options)
    )
    Select(driver.find_element(By.NAME, name)).select_by_value(value)


def fill_input(driver, name, value):
    element = driver.find_element(By.NAME, name)
    element.clear()
    element.send_keys(value)

{{ range .Records }}
def kayit_{{ .Index }}(driver):
{{- range .Entries }}
{{- if .Choice }}
    select_value(driver, {{ py .Name }}, {{ py .Code }})  # {{ comment .Label }}
{{- else }}
    fill_input(driver, {{ py .Name }}, {{ py .Code }})
{{- end }}
{{- end }}

{{ end }}
def main():
    driver = webdriver.Chrome()
    try:
{{- if .Batch }}
        kayitlar = [{{ range $i, $r := .Records }}{{ if $i }}, {{ end }}kayit_{{ $r.Index }}{{ end }}]
        for sira, kayit in enumerate(kayitlar, start=1):
            driver.get(TARGET_URL)
            kayit(driver)
            input(f"{sira}/{len(kayitlar)} dolduruldu. Kaydedip Enter'a basın...")
{{- else }}
        driver.get(TARGET_URL)
{{- range .Records }}
        kayit_{{ .Index }}(driver)
{{- end }}
        input("Form dolduruldu. Kaydedip Enter'a basın...")
{{- end }}
    finally:
        driver.quit()


if __name__ == "__main__":
    main()
`
