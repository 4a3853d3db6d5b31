package sqlinline

const QInsertLayout = `--sql a305c36d-2a38-4ae2-ab31-f07696b1c591
insert into layouts(
  id,
  product_id,
  name,
  base_image_key,
  base_width,
  base_height,
  slots,
  active,
  created_at,
  updated_at
) values (
  $1::uuid,
  $2::uuid,
  $3::text,
  $4::text,
  $5::int,
  $6::int,
  $7::jsonb,
  true,
  now(),
  now()
) returning id;
`

const QSelectLayoutByID = `--sql 4603e69d-2885-45c2-98fa-24ca04e6d79f
select id, product_id, name, base_image_key, base_width, base_height, slots, active, created_at, updated_at
from layouts
where id = $1::uuid
limit 1;
`

const QListLayoutsByProduct = `--sql 86cd622f-0a77-489d-b191-63ce937be74c
select id, product_id, name, base_image_key, base_width, base_height, slots, active, created_at, updated_at
from layouts
where product_id = $1::uuid and active
order by created_at asc;
`
